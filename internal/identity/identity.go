// Package identity manages site accounts and their session tokens. Accounts
// are optional: everything except admin mutation works for guests, signed-in
// users just get their booking details prefilled.
package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	dbpkg "github.com/eastdocs/studioctl/internal/db"
	"github.com/eastdocs/studioctl/internal/ids"
)

const (
	// SessionTTL is how long a session token stays valid.
	SessionTTL = 30 * 24 * time.Hour

	minPasswordLength = 8
	tokenBytes        = 32
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid signup input")
)

// User is the public account shape. The password hash never leaves this
// package.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Service struct {
	q   *dbpkg.Queries
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{q: dbpkg.NewQueries(db), now: time.Now}
}

// SignUp registers an account and returns it with a fresh session token.
func (s *Service) SignUp(ctx context.Context, email, displayName, password string) (User, string, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return User{}, "", fmt.Errorf("%w: a valid email address is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return User{}, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, exists, err := s.q.GetUserByEmail(ctx, email); err != nil {
		return User{}, "", err
	} else if exists {
		return User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:          ids.MustNew(s.now()),
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
	}
	err = s.q.InsertUser(ctx, dbpkg.UserRow{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: string(hash),
	})
	if err != nil {
		return User{}, "", err
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// SignIn checks the credentials and returns the account with a fresh session
// token. Wrong email and wrong password answer identically.
func (s *Service) SignIn(ctx context.Context, email, password string) (User, string, error) {
	row, exists, err := s.q.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return User{}, "", err
	}
	if !exists {
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	user := User{ID: row.ID, Email: row.Email, DisplayName: row.DisplayName}
	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// SignOut discards the session. An unknown token is a no-op.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.q.DeleteIdentitySession(ctx, hashToken(token))
}

// CurrentUser resolves a session token. ok=false is the guest path, not an
// error: missing, unknown and expired tokens all land there.
func (s *Service) CurrentUser(ctx context.Context, token string) (User, bool, error) {
	if token == "" {
		return User{}, false, nil
	}
	session, exists, err := s.q.GetIdentitySession(ctx, hashToken(token))
	if err != nil {
		return User{}, false, err
	}
	if !exists {
		return User{}, false, nil
	}
	expires, err := time.Parse(time.RFC3339, session.ExpiresAt)
	if err != nil {
		return User{}, false, fmt.Errorf("parse session expiry: %w", err)
	}
	if s.now().After(expires) {
		_ = s.q.DeleteIdentitySession(ctx, session.TokenHash)
		return User{}, false, nil
	}

	row, exists, err := s.q.GetUserByID(ctx, session.UserID)
	if err != nil {
		return User{}, false, err
	}
	if !exists {
		return User{}, false, nil
	}
	return User{ID: row.ID, Email: row.Email, DisplayName: row.DisplayName}, true, nil
}

// PruneExpired removes expired sessions; the server runs it periodically.
func (s *Service) PruneExpired(ctx context.Context) (int64, error) {
	return s.q.DeleteExpiredIdentitySessions(ctx, s.now().UTC().Format(time.RFC3339))
}

func (s *Service) createSession(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	err := s.q.InsertIdentitySession(ctx, dbpkg.IdentitySessionRow{
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: s.now().Add(SessionTTL).UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Only the sha256 of a token is stored, so a database leak does not leak
// live sessions.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	rest := email[at+1:]
	dot := strings.Index(rest, ".")
	return dot >= 1 && dot < len(rest)-1
}
