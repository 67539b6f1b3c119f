package booking

import (
	"context"
	"fmt"
	"log/slog"
)

// CheckoutClient starts a hosted checkout session for a submitted booking.
// Implementations live in internal/checkout.
type CheckoutClient interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}

// CheckoutRequest carries everything the payment collaborator needs to
// price and describe the session.
type CheckoutRequest struct {
	Reference string   `json:"reference"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Package   string   `json:"package"`
	Date      string   `json:"date"`
	Hours     int      `json:"hours"`
	Extras    []string `json:"extras"`
	Total     int      `json:"total"`
}

// CheckoutSession is the collaborator's answer: where to send the client.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ErrCheckout wraps collaborator failures so the transport layer can map
// them distinctly from validation problems.
type CheckoutError struct {
	Err error
}

func (e *CheckoutError) Error() string { return fmt.Sprintf("checkout: %v", e.Err) }
func (e *CheckoutError) Unwrap() error { return e.Err }

// StateError reports a wizard operation attempted from the wrong step or
// after completion.
type StateError struct {
	msg string
}

func (e *StateError) Error() string { return e.msg }

// Wizard is the four-step booking flow. It is not safe for concurrent use;
// the session registry serializes access.
type Wizard struct {
	Draft       Draft                     `json:"draft"`
	Step        int                       `json:"step"`
	Errors      map[int]map[string]string `json:"errors,omitempty"`
	Submitting  bool                      `json:"submitting"`
	Succeeded   bool                      `json:"succeeded"`
	RedirectURL string                    `json:"redirectUrl,omitempty"`
	CheckoutID  string                    `json:"checkoutId,omitempty"`
	Total       int                       `json:"total"`
	LastError   string                    `json:"lastError,omitempty"`

	logger *slog.Logger
}

// NewWizard starts a wizard at the personal-info step. Name and email
// prefill from the signed-in user when present; guests start blank. The
// duration defaults to two hours either way.
func NewWizard(name, email string, logger *slog.Logger) *Wizard {
	return &Wizard{
		Draft: Draft{
			Name:     name,
			Email:    email,
			Duration: DefaultDuration,
		},
		Step:   StepPersonalInfo,
		logger: logger,
	}
}

// UpdateDraft merges the patch into the draft. Validation errors recorded
// for the fields the patch touches are cleared so corrected input stops
// being flagged before the next validation pass.
func (w *Wizard) UpdateDraft(patch DraftPatch) error {
	if w.Succeeded {
		return &StateError{msg: "booking already completed"}
	}
	w.Draft = patch.apply(w.Draft)
	for _, field := range patch.fields() {
		for step, errs := range w.Errors {
			delete(errs, field)
			if len(errs) == 0 {
				delete(w.Errors, step)
			}
		}
	}
	return nil
}

// Next validates the current step. On pass it advances (capped at review)
// and clears the step's errors; on fail it records them and stays.
func (w *Wizard) Next() error {
	if w.Succeeded {
		return &StateError{msg: "booking already completed"}
	}
	errs := ValidateStep(w.Draft, w.Step)
	if len(errs) > 0 {
		if w.Errors == nil {
			w.Errors = make(map[int]map[string]string)
		}
		w.Errors[w.Step] = errs
		return nil
	}
	delete(w.Errors, w.Step)
	if w.Step < StepReview {
		w.Step++
	}
	return nil
}

// Prev steps back (floored at the first step) and clears all recorded
// errors.
func (w *Wizard) Prev() error {
	if w.Succeeded {
		return &StateError{msg: "booking already completed"}
	}
	if w.Step > StepPersonalInfo {
		w.Step--
	}
	w.Errors = nil
	return nil
}

// Submit re-validates every step, prices the draft and hands it to the
// checkout collaborator. It is only legal from the review step. On
// collaborator failure the wizard stays on review with the draft intact so
// the client can retry; on success the wizard is terminal and carries the
// redirect URL.
func (w *Wizard) Submit(ctx context.Context, reference string, checkout CheckoutClient) error {
	if w.Succeeded {
		return &StateError{msg: "booking already completed"}
	}
	if w.Step != StepReview {
		return &StateError{msg: fmt.Sprintf("submit is only allowed from the review step, currently on step %d", w.Step)}
	}

	var failed bool
	for step := StepPersonalInfo; step <= StepReview; step++ {
		if errs := ValidateStep(w.Draft, step); len(errs) > 0 {
			if w.Errors == nil {
				w.Errors = make(map[int]map[string]string)
			}
			w.Errors[step] = errs
			failed = true
		}
	}
	if failed {
		return &StateError{msg: "booking has validation errors"}
	}

	total, err := Quote(w.Draft)
	if err != nil {
		// Unknown ids priced at zero; the quoted remainder stands.
		w.logger.Warn("booking quote has unknown ids, proceeding with partial total",
			"reference", reference,
			"error", err,
			"total", total,
		)
	}
	w.Total = total

	w.Submitting = true
	session, err := checkout.CreateSession(ctx, CheckoutRequest{
		Reference: reference,
		Name:      w.Draft.Name,
		Email:     w.Draft.Email,
		Package:   w.Draft.Package,
		Date:      w.Draft.Date,
		Hours:     ParseHours(w.Draft.Duration),
		Extras:    append([]string(nil), w.Draft.Extras...),
		Total:     total,
	})
	w.Submitting = false
	if err != nil {
		w.LastError = "We could not start the payment process. Please try again."
		return &CheckoutError{Err: err}
	}

	w.Succeeded = true
	w.LastError = ""
	w.RedirectURL = session.URL
	w.CheckoutID = session.ID
	return nil
}
