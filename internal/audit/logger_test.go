package audit

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	dbpkg "github.com/eastdocs/studioctl/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	sqlDB, err := dbpkg.Open(dbpkg.DefaultOptions(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := dbpkg.RunMigrations(context.Background(), sqlDB); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return sqlDB
}

func TestSQLiteLoggerRoundTrip(t *testing.T) {
	logger, err := NewSQLiteLogger(openTestDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteLogger: %v", err)
	}
	ctx := context.Background()

	err = logger.Log(ctx, Entry{
		Actor:     "admin",
		Operation: OperationPortfolioAdd,
		Subject:   "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Detail:    map[string]any{"title": "Pilot episode"},
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := logger.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.Actor != "admin" || got.Operation != OperationPortfolioAdd {
		t.Errorf("entry = %+v", got)
	}
	if got.Detail["title"] != "Pilot episode" {
		t.Errorf("detail = %v", got.Detail)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not recorded")
	}
}

func TestSQLiteLoggerDefaultsActorAndRequiresOperation(t *testing.T) {
	logger, err := NewSQLiteLogger(openTestDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteLogger: %v", err)
	}
	ctx := context.Background()

	if err := logger.Log(ctx, Entry{Subject: "content"}); err == nil {
		t.Error("missing operation must fail")
	}

	if err := logger.Log(ctx, Entry{Operation: OperationContentReset}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	entries, err := logger.List(ctx, 1)
	if err != nil || len(entries) != 1 {
		t.Fatalf("List = %v, %v", entries, err)
	}
	if entries[0].Actor != "local" {
		t.Errorf("actor = %q, want local fallback", entries[0].Actor)
	}
}

func TestAsyncLoggerWritesThrough(t *testing.T) {
	sink, err := NewSQLiteLogger(openTestDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteLogger: %v", err)
	}
	async := NewAsyncLogger(sink, 8, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := async.Log(ctx, Entry{Operation: OperationContentUpdate, Subject: "studioHire"}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := async.WaitIdle(waitCtx); err != nil {
		t.Fatalf("WaitIdle: %v", err)
	}

	entries, err := async.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("len(entries) = %d, want 5", len(entries))
	}

	if err := async.Close(waitCtx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := async.Log(ctx, Entry{Operation: OperationContentUpdate}); err == nil {
		t.Error("logging after close must fail")
	}
}
