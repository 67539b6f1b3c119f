package db

type BookingRow struct {
	ID                int64
	Reference         string
	Name              string
	Email             string
	Phone             string
	Package           string
	ProjectType       string
	Date              string
	Hours             int
	ExtrasJSON        string
	Notes             string
	Total             int
	CheckoutSessionID string
	CreatedAt         string
}

type UserRow struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    string
}

type IdentitySessionRow struct {
	TokenHash string
	UserID    string
	ExpiresAt string
	CreatedAt string
}

type AuditRow struct {
	ID         int64
	OccurredAt string
	Actor      string
	Operation  string
	Subject    string
	Detail     string
	CreatedAt  string
}
