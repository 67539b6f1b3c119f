// Package audit records admin mutations to a sqlite-backed log. Writes go
// through an async queue so request handlers never block on the log.
package audit

import (
	"context"
	"time"
)

const (
	OperationSectionReplace  = "content.section.replace"
	OperationContentUpdate   = "content.update"
	OperationContentReset    = "content.reset"
	OperationPortfolioAdd    = "portfolio.add"
	OperationPortfolioUpdate = "portfolio.update"
	OperationPortfolioRemove = "portfolio.remove"
	OperationBookingSubmit   = "booking.submit"
	OperationIdentitySignup  = "identity.signup"
)

type Entry struct {
	ID        int64          `json:"id"`
	Actor     string         `json:"actor"`
	Timestamp time.Time      `json:"timestamp"`
	Operation string         `json:"operation"`
	Subject   string         `json:"subject"`
	Detail    map[string]any `json:"detail,omitempty"`
}

type Logger interface {
	Log(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
