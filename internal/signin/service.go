// Package signin records passwordless sign-in attempts and completes them
// once the user brings back the e-mailed code.
package signin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartbank/smartbank/internal/auth"
	"github.com/smartbank/smartbank/internal/database/repository"
)

// ErrNoPending means no link or code has been sent yet.
var ErrNoPending = errors.New("no sign-in awaiting confirmation")

// Journal is the persistence the service needs.
type Journal interface {
	Create(ctx context.Context, s repository.SignInRequest) error
	SetStatus(ctx context.Context, id string, status repository.SignInStatus, errText string) error
	LatestSent(ctx context.Context) (repository.SignInRequest, error)
}

// SessionStore keeps the token of the signed-in user.
type SessionStore interface {
	Put(name, value string) error
}

type Service struct {
	Provider auth.Provider
	Journal  Journal
	Sessions SessionStore
	Log      *slog.Logger

	// SessionKey names the slot the session token is written to.
	SessionKey string
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// RequestLink asks the provider to e-mail a sign-in link to email. The
// provider result is returned as is; journal problems are only logged.
func (s *Service) RequestLink(ctx context.Context, email, redirectTo string) error {
	id := uuid.NewString()
	journaled := true
	if err := s.Journal.Create(ctx, repository.SignInRequest{
		ID:         id,
		Email:      email,
		Provider:   s.Provider.Name(),
		RedirectTo: redirectTo,
		Status:     repository.SignInPending,
	}); err != nil {
		journaled = false
		s.logger().ErrorContext(ctx, "journal sign-in request", "err", err)
	}

	err := s.Provider.RequestMagicLink(ctx, email, redirectTo)
	if journaled {
		status, text := repository.SignInSent, ""
		if err != nil {
			status, text = repository.SignInFailed, auth.Message(err)
		}
		// the caller may already be gone; record the outcome regardless
		if jerr := s.Journal.SetStatus(context.WithoutCancel(ctx), id, status, text); jerr != nil {
			s.logger().ErrorContext(ctx, "journal sign-in outcome", "id", id, "err", jerr)
		}
	}
	if err != nil {
		s.logger().WarnContext(ctx, "sign-in link failed", "provider", s.Provider.Name(), "err", err)
		return err
	}
	s.logger().InfoContext(ctx, "sign-in link sent", "provider", s.Provider.Name(), "request_id", id)
	return nil
}

// PendingEmail is the address of the latest request awaiting confirmation.
func (s *Service) PendingEmail(ctx context.Context) (string, error) {
	req, err := s.Journal.LatestSent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoPending
	}
	if err != nil {
		return "", fmt.Errorf("load pending sign-in: %w", err)
	}
	return req.Email, nil
}

// VerifyCode completes the latest pending sign-in with code and stores the
// resulting session token.
func (s *Service) VerifyCode(ctx context.Context, code string) (string, error) {
	req, err := s.Journal.LatestSent(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoPending
	}
	if err != nil {
		return "", fmt.Errorf("load pending sign-in: %w", err)
	}

	session, err := s.Provider.VerifyCode(ctx, req.Email, code)
	if err != nil {
		return "", err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Put(s.SessionKey, session.AccessToken); err != nil {
			return "", fmt.Errorf("store session: %w", err)
		}
	}
	if err := s.Journal.SetStatus(context.WithoutCancel(ctx), req.ID, repository.SignInVerified, ""); err != nil {
		s.logger().ErrorContext(ctx, "journal verification", "id", req.ID, "err", err)
	}
	s.logger().InfoContext(ctx, "signed in", "provider", s.Provider.Name(), "user_id", session.UserID)
	return req.Email, nil
}
