package server

import (
	"net/http"
	"strconv"

	"github.com/eastdocs/studioctl/internal/placeholder"
)

func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	card := placeholder.Card{Label: q.Get("label")}
	if v, err := strconv.Atoi(q.Get("w")); err == nil {
		card.Width = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil {
		card.Height = v
	}
	png, err := s.placeholders.Get(card)
	if err != nil {
		s.writeInternalAPIError(w, r, "render placeholder failed", err, "label", card.Label)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
