package server

import (
	"net/http"
	"strings"
)

func registerAPIRoutes(mux *http.ServeMux, srv *Server) {
	mux.HandleFunc("/api/v1/content", srv.handleContentTree)
	mux.HandleFunc("/api/v1/content/", srv.handleContentAPI)
	mux.HandleFunc("/api/v1/booking/catalog", srv.handleBookingCatalog)
	mux.HandleFunc("/api/v1/booking/quote", srv.handleBookingQuote)
	mux.HandleFunc("/api/v1/booking/wizard", srv.handleWizardCreate)
	mux.HandleFunc("/api/v1/booking/wizard/", srv.handleWizardAPI)
	mux.HandleFunc("/api/v1/bookings", srv.requireAdmin(srv.handleBookingsList))
	mux.HandleFunc("/api/v1/audit", srv.requireAdmin(srv.handleAuditList))
	mux.HandleFunc("/api/v1/identity/signup", srv.handleSignup)
	mux.HandleFunc("/api/v1/identity/login", srv.handleLogin)
	mux.HandleFunc("/api/v1/identity/logout", srv.handleLogout)
	mux.HandleFunc("/api/v1/identity/me", srv.handleMe)
	mux.HandleFunc("/media/placeholder.png", srv.handlePlaceholder)
}

func (s *Server) handleContentAPI(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/content/sections":
		s.requireAdmin(s.handleContentSections)(w, r)
	case r.URL.Path == "/api/v1/content/updates":
		s.requireAdmin(s.handleContentUpdates)(w, r)
	case r.URL.Path == "/api/v1/content/reset":
		s.requireAdmin(s.handleContentReset)(w, r)
	case r.URL.Path == "/api/v1/content/portfolio":
		s.requireAdmin(s.handlePortfolio)(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/content/portfolio/"):
		s.requireAdmin(s.handlePortfolioItem)(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleWizardAPI(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/booking/wizard/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" || strings.Contains(action, "/") {
		http.NotFound(w, r)
		return
	}
	switch action {
	case "":
		s.handleWizardGet(w, r, id)
	case "draft":
		s.handleWizardDraft(w, r, id)
	case "next":
		s.handleWizardNext(w, r, id)
	case "prev":
		s.handleWizardPrev(w, r, id)
	case "submit":
		s.handleWizardSubmit(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) ready() bool {
	return s.db != nil && s.store != nil
}

func writeNotReady(w http.ResponseWriter) {
	writeAPIError(w, http.StatusServiceUnavailable, "server is not ready", nil)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeAPIError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return false
	}
	return true
}
