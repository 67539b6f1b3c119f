package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/eastdocs/studioctl/internal/audit"
	"github.com/eastdocs/studioctl/internal/booking"
	dbpkg "github.com/eastdocs/studioctl/internal/db"
)

type wizardResponse struct {
	ID     string          `json:"id"`
	Wizard *booking.Wizard `json:"wizard"`
}

type quoteResponse struct {
	Total        int      `json:"total"`
	Hours        int      `json:"hours"`
	UnknownItems []string `json:"unknownItems,omitempty"`
}

type bookingsResponse struct {
	Bookings []bookingItem `json:"bookings"`
}

type bookingItem struct {
	ID                int64    `json:"id"`
	Reference         string   `json:"reference"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone,omitempty"`
	Package           string   `json:"package"`
	ProjectType       string   `json:"projectType,omitempty"`
	Date              string   `json:"date"`
	Hours             int      `json:"hours"`
	Extras            []string `json:"extras,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	Total             int      `json:"total"`
	CheckoutSessionID string   `json:"checkoutSessionId,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

func (s *Server) handleBookingCatalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, booking.Tables())
}

func (s *Server) handleBookingQuote(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	draft := booking.Draft{
		Package:  q.Get("package"),
		Duration: q.Get("duration"),
	}
	if raw := strings.TrimSpace(q.Get("extras")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				draft.Extras = append(draft.Extras, id)
			}
		}
	}
	if draft.Package == "" {
		writeAPIError(w, http.StatusBadRequest, "package is required", nil)
		return
	}
	if draft.Duration == "" {
		draft.Duration = booking.DefaultDuration
	}
	resp := quoteResponse{Hours: booking.ParseHours(draft.Duration)}
	total, err := booking.Quote(draft)
	if err != nil {
		var pricingErr *booking.PricingError
		if !errors.As(err, &pricingErr) {
			s.writeDomainError(w, r, err)
			return
		}
		s.logger.WarnContext(r.Context(), "quote contains unknown price ids",
			"unknown", pricingErr.Unknown)
		resp.UnknownItems = pricingErr.Unknown
	}
	resp.Total = total
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWizardCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	var name, email string
	if token := strings.TrimSpace(r.Header.Get("X-Session-Token")); token != "" {
		user, ok, err := s.identity.CurrentUser(r.Context(), token)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		if ok {
			name = user.DisplayName
			email = user.Email
		}
	}
	wiz := booking.NewWizard(name, email, s.logger)
	sess := s.sessions.Create(wiz)
	writeJSON(w, http.StatusCreated, wizardResponse{ID: sess.ID, Wizard: wiz})
}

// withWizard looks up the session and runs fn with its wizard locked. The
// response must be written inside fn so the state cannot move underneath
// the encoder.
func (s *Server) withWizard(w http.ResponseWriter, r *http.Request, id string, fn func(wz *booking.Wizard) error) {
	if !s.ready() {
		writeNotReady(w)
		return
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeAPIError(w, http.StatusNotFound, "booking session not found", nil)
		return
	}
	if err := sess.With(fn); err != nil {
		s.writeDomainError(w, r, err)
	}
}

func (s *Server) handleWizardGet(w http.ResponseWriter, r *http.Request, id string) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.withWizard(w, r, id, func(wz *booking.Wizard) error {
		writeJSON(w, http.StatusOK, wizardResponse{ID: id, Wizard: wz})
		return nil
	})
}

func (s *Server) handleWizardDraft(w http.ResponseWriter, r *http.Request, id string) {
	if !requireMethod(w, r, http.MethodPut) {
		return
	}
	var patch booking.DraftPatch
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&patch); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	s.withWizard(w, r, id, func(wz *booking.Wizard) error {
		if err := wz.UpdateDraft(patch); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wizardResponse{ID: id, Wizard: wz})
		return nil
	})
}

func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request, id string) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.withWizard(w, r, id, func(wz *booking.Wizard) error {
		if err := wz.Next(); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wizardResponse{ID: id, Wizard: wz})
		return nil
	})
}

func (s *Server) handleWizardPrev(w http.ResponseWriter, r *http.Request, id string) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.withWizard(w, r, id, func(wz *booking.Wizard) error {
		if err := wz.Prev(); err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, wizardResponse{ID: id, Wizard: wz})
		return nil
	})
}

func (s *Server) handleWizardSubmit(w http.ResponseWriter, r *http.Request, id string) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	completed := false
	s.withWizard(w, r, id, func(wz *booking.Wizard) error {
		if err := wz.Submit(r.Context(), id, s.checkout); err != nil {
			return err
		}
		if err := s.persistBooking(r, id, wz); err != nil {
			// The checkout session exists; losing the row is not worth
			// failing the customer request over.
			s.logger.ErrorContext(r.Context(), "persist booking failed",
				"reference", id, "error", err)
		}
		s.recordAudit(r.Context(), r, audit.OperationBookingSubmit, id, map[string]any{
			"package": wz.Draft.Package,
			"total":   wz.Total,
		})
		completed = true
		writeJSON(w, http.StatusOK, wizardResponse{ID: id, Wizard: wz})
		return nil
	})
	if completed {
		s.sessions.Delete(id)
	}
}

func (s *Server) persistBooking(r *http.Request, reference string, wz *booking.Wizard) error {
	extrasJSON, err := json.Marshal(wz.Draft.Extras)
	if err != nil {
		return err
	}
	_, err = s.queries.InsertBooking(r.Context(), dbpkg.BookingRow{
		Reference:         reference,
		Name:              wz.Draft.Name,
		Email:             wz.Draft.Email,
		Phone:             wz.Draft.Phone,
		Package:           wz.Draft.Package,
		ProjectType:       wz.Draft.ProjectType,
		Date:              wz.Draft.Date,
		Hours:             booking.ParseHours(wz.Draft.Duration),
		ExtrasJSON:        string(extrasJSON),
		Notes:             wz.Draft.Notes,
		Total:             wz.Total,
		CheckoutSessionID: wz.CheckoutID,
	})
	return err
}

func (s *Server) handleBookingsList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.queries.ListBookings(r.Context(), limit)
	if err != nil {
		s.writeInternalAPIError(w, r, "list bookings failed", err)
		return
	}
	resp := bookingsResponse{Bookings: make([]bookingItem, 0, len(rows))}
	for _, row := range rows {
		item := bookingItem{
			ID:                row.ID,
			Reference:         row.Reference,
			Name:              row.Name,
			Email:             row.Email,
			Phone:             row.Phone,
			Package:           row.Package,
			ProjectType:       row.ProjectType,
			Date:              row.Date,
			Hours:             row.Hours,
			Notes:             row.Notes,
			Total:             row.Total,
			CheckoutSessionID: row.CheckoutSessionID,
			CreatedAt:         row.CreatedAt,
		}
		if row.ExtrasJSON != "" {
			if err := json.Unmarshal([]byte(row.ExtrasJSON), &item.Extras); err != nil {
				s.logger.Warn("malformed extras on booking row", "id", row.ID, "error", err)
			}
		}
		resp.Bookings = append(resp.Bookings, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if !s.ready() {
		writeNotReady(w)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.auditLogger.List(r.Context(), limit)
	if err != nil {
		s.writeInternalAPIError(w, r, "list audit entries failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
