package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("not found")

// SignInRepo journals magic-link requests.
type SignInRepo struct {
	db *sql.DB
}

func NewSignInRepo(db *sql.DB) *SignInRepo {
	return &SignInRepo{db: db}
}

func (r *SignInRepo) Create(ctx context.Context, s SignInRequest) error {
	if s.Status == "" {
		s.Status = SignInPending
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sign_in_requests(id, email, provider, redirect_to, status, error, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, s.ID, s.Email, s.Provider, s.RedirectTo, string(s.Status), s.Error)
	return err
}

// SetStatus moves a request to status, recording errText for failures.
func (r *SignInRepo) SetStatus(ctx context.Context, id string, status SignInStatus, errText string) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE sign_in_requests SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, string(status), errText, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("sign-in request %s: %w", id, ErrNotFound)
	}
	return nil
}

// LatestSent returns the most recent request whose link or code went out.
func (r *SignInRepo) LatestSent(ctx context.Context) (SignInRequest, error) {
	row := r.db.QueryRowContext(ctx, selectSignIn+` WHERE status = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, string(SignInSent))
	return scanSignIn(row)
}

// Recent lists the newest requests first.
func (r *SignInRepo) Recent(ctx context.Context, limit int) ([]SignInRequest, error) {
	rows, err := r.db.QueryContext(ctx, selectSignIn+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SignInRequest
	for rows.Next() {
		s, err := scanSignIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const selectSignIn = `SELECT id, email, provider, redirect_to, status, error, created_at, updated_at FROM sign_in_requests`

type scanner interface {
	Scan(dest ...any) error
}

func scanSignIn(row scanner) (SignInRequest, error) {
	var s SignInRequest
	var status string
	err := row.Scan(&s.ID, &s.Email, &s.Provider, &s.RedirectTo, &status, &s.Error, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SignInRequest{}, ErrNotFound
	}
	if err != nil {
		return SignInRequest{}, err
	}
	s.Status = SignInStatus(status)
	return s, nil
}
