package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	dbpkg "github.com/eastdocs/studioctl/internal/db"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "identity.db")
	sqlDB, err := dbpkg.Open(dbpkg.DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := dbpkg.RunMigrations(context.Background(), sqlDB); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return NewService(sqlDB)
}

func TestSignUpAndCurrentUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.SignUp(ctx, "Asha@Example.com", "Asha Begum", "correct-horse")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if token == "" {
		t.Fatal("no session token issued")
	}

	got, ok, err := svc.CurrentUser(ctx, token)
	if err != nil || !ok {
		t.Fatalf("CurrentUser = %t, %v", ok, err)
	}
	if got.ID != user.ID || got.DisplayName != "Asha Begum" {
		t.Errorf("CurrentUser = %+v, want %+v", got, user)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "not-an-email", "x", "long-enough-pw"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad email: err = %v", err)
	}
	if _, _, err := svc.SignUp(ctx, "a@example.com", "x", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short password: err = %v", err)
	}

	if _, _, err := svc.SignUp(ctx, "a@example.com", "x", "long-enough-pw"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, _, err := svc.SignUp(ctx, "A@example.com", "y", "long-enough-pw"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v", err)
	}
}

func TestSignInChecksCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.SignUp(ctx, "asha@example.com", "Asha", "correct-horse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, _, err := svc.SignIn(ctx, "asha@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}

	user, token, err := svc.SignIn(ctx, "asha@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Email != "asha@example.com" || token == "" {
		t.Errorf("SignIn = %+v, token %q", user, token)
	}
}

func TestSignOutInvalidatesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "asha@example.com", "Asha", "correct-horse")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if err := svc.SignOut(ctx, token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, ok, err := svc.CurrentUser(ctx, token); err != nil || ok {
		t.Errorf("CurrentUser after signout = %t, %v", ok, err)
	}

	if err := svc.SignOut(ctx, token); err != nil {
		t.Errorf("repeat SignOut: %v", err)
	}
	if err := svc.SignOut(ctx, ""); err != nil {
		t.Errorf("empty token SignOut: %v", err)
	}
}

func TestCurrentUserGuestAndExpiry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, ok, err := svc.CurrentUser(ctx, ""); err != nil || ok {
		t.Errorf("guest path: ok=%t err=%v", ok, err)
	}
	if _, ok, err := svc.CurrentUser(ctx, "deadbeef"); err != nil || ok {
		t.Errorf("unknown token: ok=%t err=%v", ok, err)
	}

	_, token, err := svc.SignUp(ctx, "asha@example.com", "Asha", "correct-horse")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	// Jump the clock past the session TTL.
	svc.now = func() time.Time { return time.Now().Add(SessionTTL + time.Hour) }
	if _, ok, err := svc.CurrentUser(ctx, token); err != nil || ok {
		t.Errorf("expired token: ok=%t err=%v", ok, err)
	}

	svc.now = time.Now
	if removed, err := svc.PruneExpired(ctx); err != nil || removed != 0 {
		// The expired lookup already deleted the row.
		t.Errorf("PruneExpired = %d, %v", removed, err)
	}
}
