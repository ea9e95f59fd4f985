// Package auth talks to the external passwordless identity provider. The app
// never handles passwords: it asks the provider to e-mail a sign-in link (or
// one-time code) and waits for the user to confirm out of band.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Collaborator sends magic links.
type Collaborator interface {
	RequestMagicLink(ctx context.Context, email, redirectTo string) error
}

// CodeVerifier exchanges an e-mailed one-time code for a session.
type CodeVerifier interface {
	VerifyCode(ctx context.Context, email, code string) (Session, error)
}

// Provider is implemented by the shipped provider clients.
type Provider interface {
	Collaborator
	CodeVerifier
	Name() string
}

// Session is what a provider hands back after a successful verification.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	ExpiresAt    time.Time
}

// RequestError is any failure reported by the provider or on the way to it.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("auth %s: status %d: %s: %v", e.Op, e.Status, e.Message, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("auth %s: status %d: %s", e.Op, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("auth %s: %s: %v", e.Op, e.Message, e.Err)
	default:
		return fmt.Sprintf("auth %s: %s", e.Op, e.Message)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// FailureMessage is the provider text shown to the user.
func (e *RequestError) FailureMessage() string { return e.Message }

// Message extracts user-facing text from err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}

func transportError(op string, err error) *RequestError {
	msg := "Network request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "The request timed out"
	}
	return &RequestError{Op: op, Message: msg, Err: err}
}
