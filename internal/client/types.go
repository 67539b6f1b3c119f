package client

// QuoteResponse is the priced booking estimate returned by the daemon.
type QuoteResponse struct {
	Total        int      `json:"total"`
	Hours        int      `json:"hours"`
	UnknownItems []string `json:"unknownItems,omitempty"`
}

type BookingsResponse struct {
	Bookings []BookingItem `json:"bookings"`
}

type BookingItem struct {
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

type AuditResponse struct {
	Entries []AuditEntry `json:"entries"`
}

type AuditEntry struct {
	ID        int64          `json:"id"`
	Actor     string         `json:"actor"`
	Timestamp string         `json:"timestamp"`
	Operation string         `json:"operation"`
	Subject   string         `json:"subject"`
	Detail    map[string]any `json:"detail,omitempty"`
}

type VersionResponse struct {
	Version string `json:"version"`
}
