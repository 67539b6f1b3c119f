package server

import (
	"errors"
	"net/http"

	"github.com/eastdocs/studioctl/internal/booking"
	"github.com/eastdocs/studioctl/internal/checkout"
	"github.com/eastdocs/studioctl/internal/content"
	"github.com/eastdocs/studioctl/internal/identity"
)

func writeAPIError(w http.ResponseWriter, status int, message string, details []string) {
	resp := map[string]any{"error": message}
	if len(details) > 0 {
		resp["details"] = details
	}
	writeJSON(w, status, resp)
}

func (s *Server) writeInternalAPIError(w http.ResponseWriter, r *http.Request, message string, err error, attrs ...any) {
	logAttrs := make([]any, 0, len(attrs)+2)
	logAttrs = append(logAttrs, "error", err)
	logAttrs = append(logAttrs, attrs...)
	s.logger.ErrorContext(r.Context(), message, logAttrs...)
	writeAPIError(w, http.StatusInternalServerError, message, nil)
}

// writeDomainError maps package-level error types onto API status codes.
// Anything unrecognized falls through to a logged 500.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var badRequest *content.BadRequestError
	if errors.As(err, &badRequest) {
		writeAPIError(w, http.StatusBadRequest, badRequest.Error(), nil)
		return
	}
	var notFound *content.NotFoundError
	if errors.As(err, &notFound) {
		writeAPIError(w, http.StatusNotFound, notFound.Error(), nil)
		return
	}
	var stateErr *booking.StateError
	if errors.As(err, &stateErr) {
		writeAPIError(w, http.StatusConflict, stateErr.Error(), nil)
		return
	}
	var checkoutErr *booking.CheckoutError
	if errors.As(err, &checkoutErr) || errors.Is(err, checkout.ErrDisabled) {
		writeAPIError(w, http.StatusBadGateway, "payment could not be started, please try again", nil)
		return
	}
	switch {
	case errors.Is(err, identity.ErrInvalidInput):
		writeAPIError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, identity.ErrEmailTaken):
		writeAPIError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeAPIError(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		s.writeInternalAPIError(w, r, "internal error", err, "path", r.URL.Path)
	}
}
