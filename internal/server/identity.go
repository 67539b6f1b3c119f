package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/eastdocs/studioctl/internal/audit"
	"github.com/eastdocs/studioctl/internal/identity"
)

type signupRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  identity.User `json:"user"`
	Token string        `json:"token"`
}

type meResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *identity.User `json:"user,omitempty"`
}

func sessionTokenFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Session-Token"))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	var req signupRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, token, err := s.identity.SignUp(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.recordAudit(r.Context(), r, audit.OperationIdentitySignup, user.ID, map[string]any{
		"email": user.Email,
	})
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	user, token, err := s.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	if err := s.identity.SignOut(r.Context(), sessionTokenFromRequest(r)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	token := sessionTokenFromRequest(r)
	if token == "" {
		writeJSON(w, http.StatusOK, meResponse{})
		return
	}
	user, ok, err := s.identity.CurrentUser(r.Context(), token)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, meResponse{})
		return
	}
	writeJSON(w, http.StatusOK, meResponse{Authenticated: true, User: &user})
}
