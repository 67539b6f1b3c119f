package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/eastdocs/studioctl/internal/db"
)

const auditTimestampLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteLogger struct {
	q *dbpkg.Queries
}

func NewSQLiteLogger(db *sql.DB) (*SQLiteLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &SQLiteLogger{q: dbpkg.NewQueries(db)}, nil
}

func (l *SQLiteLogger) Log(ctx context.Context, entry Entry) error {
	operation := strings.TrimSpace(entry.Operation)
	if operation == "" {
		return fmt.Errorf("operation is required")
	}
	actor := strings.TrimSpace(entry.Actor)
	if actor == "" {
		actor = "local"
	}
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	detailJSON := ""
	if entry.Detail != nil {
		b, err := json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshal audit detail: %w", err)
		}
		detailJSON = string(b)
	}

	_, err := l.q.InsertAuditEntry(ctx, dbpkg.AuditRow{
		OccurredAt: ts.UTC().Format(auditTimestampLayout),
		Actor:      actor,
		Operation:  operation,
		Subject:    entry.Subject,
		Detail:     detailJSON,
	})
	if err != nil {
		return fmt.Errorf("insert audit log entry: %w", err)
	}
	return nil
}

func (l *SQLiteLogger) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.q.ListAuditEntries(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry := Entry{
			ID:        row.ID,
			Actor:     row.Actor,
			Operation: row.Operation,
			Subject:   row.Subject,
		}
		if ts, err := time.Parse(auditTimestampLayout, row.OccurredAt); err == nil {
			entry.Timestamp = ts
		}
		if row.Detail != "" {
			var detail map[string]any
			if err := json.Unmarshal([]byte(row.Detail), &detail); err == nil {
				entry.Detail = detail
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
