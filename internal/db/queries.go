package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db queryer
}

func NewQueries(db queryer) *Queries {
	return &Queries{db: db}
}

// Content snapshot. The table holds at most one row.

func (q *Queries) GetContentSnapshot(ctx context.Context) ([]byte, bool, error) {
	var data string
	err := q.db.QueryRowContext(ctx, `SELECT data FROM content_snapshots WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get content snapshot: %w", err)
	}
	return []byte(data), true, nil
}

func (q *Queries) UpsertContentSnapshot(ctx context.Context, data []byte) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO content_snapshots(id, data) VALUES(1, ?)
ON CONFLICT(id) DO UPDATE SET
  data=excluded.data,
  updated_at=strftime('%Y-%m-%dT%H:%M:%fZ','now')
`, string(data))
	if err != nil {
		return fmt.Errorf("upsert content snapshot: %w", err)
	}
	return nil
}

func (q *Queries) DeleteContentSnapshot(ctx context.Context) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM content_snapshots WHERE id = 1`); err != nil {
		return fmt.Errorf("delete content snapshot: %w", err)
	}
	return nil
}

// Bookings.

func (q *Queries) InsertBooking(ctx context.Context, in BookingRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
INSERT INTO bookings(reference, name, email, phone, package, project_type, date, hours, extras_json, notes, total, checkout_session_id)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.Reference, in.Name, in.Email, in.Phone, in.Package, in.ProjectType, in.Date, in.Hours, in.ExtrasJSON, in.Notes, in.Total, in.CheckoutSessionID)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return lastInsertID("insert booking", res)
}

func (q *Queries) ListBookings(ctx context.Context, limit int) ([]BookingRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.db.QueryContext(ctx, `
SELECT id, reference, name, email, phone, package, project_type, date, hours, extras_json, notes, total, checkout_session_id, created_at
FROM bookings ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []BookingRow{}
	for rows.Next() {
		var row BookingRow
		if err := rows.Scan(&row.ID, &row.Reference, &row.Name, &row.Email, &row.Phone, &row.Package, &row.ProjectType, &row.Date, &row.Hours, &row.ExtrasJSON, &row.Notes, &row.Total, &row.CheckoutSessionID, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// Users and identity sessions.

func (q *Queries) InsertUser(ctx context.Context, in UserRow) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO users(id, email, display_name, password_hash) VALUES(?, ?, ?, ?)`,
		in.ID, in.Email, in.DisplayName, in.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (UserRow, bool, error) {
	var out UserRow
	err := q.db.QueryRowContext(ctx, `SELECT id, email, display_name, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&out.ID, &out.Email, &out.DisplayName, &out.PasswordHash, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return out, false, nil
	}
	if err != nil {
		return out, false, fmt.Errorf("get user by email: %w", err)
	}
	return out, true, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (UserRow, bool, error) {
	var out UserRow
	err := q.db.QueryRowContext(ctx, `SELECT id, email, display_name, password_hash, created_at FROM users WHERE id = ?`, id).
		Scan(&out.ID, &out.Email, &out.DisplayName, &out.PasswordHash, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return out, false, nil
	}
	if err != nil {
		return out, false, fmt.Errorf("get user by id: %w", err)
	}
	return out, true, nil
}

func (q *Queries) InsertIdentitySession(ctx context.Context, in IdentitySessionRow) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO identity_sessions(token_hash, user_id, expires_at) VALUES(?, ?, ?)`,
		in.TokenHash, in.UserID, in.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert identity session: %w", err)
	}
	return nil
}

func (q *Queries) GetIdentitySession(ctx context.Context, tokenHash string) (IdentitySessionRow, bool, error) {
	var out IdentitySessionRow
	err := q.db.QueryRowContext(ctx, `SELECT token_hash, user_id, expires_at, created_at FROM identity_sessions WHERE token_hash = ?`, tokenHash).
		Scan(&out.TokenHash, &out.UserID, &out.ExpiresAt, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return out, false, nil
	}
	if err != nil {
		return out, false, fmt.Errorf("get identity session: %w", err)
	}
	return out, true, nil
}

func (q *Queries) DeleteIdentitySession(ctx context.Context, tokenHash string) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM identity_sessions WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("delete identity session: %w", err)
	}
	return nil
}

func (q *Queries) DeleteExpiredIdentitySessions(ctx context.Context, now string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM identity_sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired identity sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired identity sessions rows affected: %w", err)
	}
	return n, nil
}

// Audit log.

func (q *Queries) InsertAuditEntry(ctx context.Context, in AuditRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO audit_log(occurred_at, actor, operation, subject, detail) VALUES(?, ?, ?, ?, ?)`,
		in.OccurredAt, in.Actor, in.Operation, in.Subject, in.Detail)
	if err != nil {
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}
	return lastInsertID("insert audit entry", res)
}

func (q *Queries) ListAuditEntries(ctx context.Context, limit int) ([]AuditRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.db.QueryContext(ctx, `
SELECT id, occurred_at, actor, operation, subject, detail, created_at
FROM audit_log ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	out := []AuditRow{}
	for rows.Next() {
		var row AuditRow
		if err := rows.Scan(&row.ID, &row.OccurredAt, &row.Actor, &row.Operation, &row.Subject, &row.Detail, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}

func lastInsertID(op string, res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", op, err)
	}
	return id, nil
}
