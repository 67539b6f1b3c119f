package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path"

	"github.com/eastdocs/studioctl/internal/audit"
	"github.com/eastdocs/studioctl/internal/content"
)

const maxRequestBody = 1 << 20

func (s *Server) recordAudit(ctx context.Context, r *http.Request, operation, subject string, detail map[string]any) {
	if s.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		Actor:     actorFromRequest(r),
		Operation: operation,
		Subject:   subject,
		Detail:    detail,
	}
	if err := s.auditLogger.Log(ctx, entry); err != nil {
		s.logger.Warn("audit log write failed", "operation", operation, "error", err)
	}
}

func (s *Server) handleContentTree(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/content" {
		http.NotFound(w, r)
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Get())
}

func (s *Server) handleContentSections(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPut) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	var patch content.SectionPatch
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&patch); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := s.store.ReplaceSection(r.Context(), patch); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.recordAudit(r.Context(), r, audit.OperationSectionReplace, "content", map[string]any{
		"sections": patch.Sections(),
	})
	writeJSON(w, http.StatusOK, s.store.Get())
}

func (s *Server) handleContentUpdates(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	update, err := content.DecodeUpdate(raw)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.store.Apply(r.Context(), update); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.recordAudit(r.Context(), r, audit.OperationContentUpdate, "content", map[string]any{
		"op": update.Op(),
	})
	writeJSON(w, http.StatusOK, s.store.Get())
}

func (s *Server) handleContentReset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	if err := s.store.Reset(r.Context()); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.recordAudit(r.Context(), r, audit.OperationContentReset, "content", nil)
	writeJSON(w, http.StatusOK, s.store.Get())
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	var item content.PortfolioItem
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&item); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	created, err := s.store.AddPortfolioItem(r.Context(), item)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.recordAudit(r.Context(), r, audit.OperationPortfolioAdd, created.ID, map[string]any{
		"title": created.Title,
	})
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePortfolioItem(w http.ResponseWriter, r *http.Request) {
	if !s.ready() {
		writeNotReady(w)
		return
	}
	id := path.Base(r.URL.Path)
	switch r.Method {
	case http.MethodPut:
		var item content.PortfolioItem
		if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&item); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		updated, err := s.store.UpdatePortfolioItem(r.Context(), id, item)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.recordAudit(r.Context(), r, audit.OperationPortfolioUpdate, id, map[string]any{
			"title": updated.Title,
		})
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.store.RemovePortfolioItem(r.Context(), id); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.recordAudit(r.Context(), r, audit.OperationPortfolioRemove, id, nil)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeAPIError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	}
}
