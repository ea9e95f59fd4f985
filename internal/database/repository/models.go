package repository

import "time"

// SignInStatus is the lifecycle of a sign-in request.
type SignInStatus string

const (
	SignInPending  SignInStatus = "pending"
	SignInSent     SignInStatus = "sent"
	SignInFailed   SignInStatus = "failed"
	SignInVerified SignInStatus = "verified"
)

// SignInRequest represents a sign_in_requests row.
type SignInRequest struct {
	ID         string
	Email      string
	Provider   string
	RedirectTo string
	Status     SignInStatus
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
