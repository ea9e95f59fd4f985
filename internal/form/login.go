package form

import "errors"

// Phase is the submit lifecycle of an e-mail form.
type Phase int

const (
	Editing Phase = iota
	Submitting
	Done
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// FailureMessager is implemented by errors that carry text meant for the user.
type FailureMessager interface {
	FailureMessage() string
}

// LoginForm holds the candidate address of the login and sign-up screens.
// It has no rendering concerns; screens call it on every input event.
type LoginForm struct {
	email   string
	valid   bool
	phase   Phase
	failure string
}

func NewLoginForm() *LoginForm {
	return &LoginForm{}
}

// SetEmail replaces the candidate address and recomputes validity.
// Input is ignored unless the form is editable.
func (f *LoginForm) SetEmail(s string) {
	if f.phase != Editing {
		return
	}
	f.email = s
	f.valid = ValidEmail(s)
}

func (f *LoginForm) Email() string  { return f.email }
func (f *LoginForm) Valid() bool    { return f.valid }
func (f *LoginForm) Phase() Phase   { return f.phase }
func (f *LoginForm) Editable() bool { return f.phase == Editing }

// CanSubmit reports whether the submit action is invokable.
func (f *LoginForm) CanSubmit() bool {
	return f.phase == Editing && f.valid && f.failure == ""
}

// BeginSubmit moves Editing -> Submitting and returns the address to send.
func (f *LoginForm) BeginSubmit() (string, bool) {
	if !f.CanSubmit() {
		return "", false
	}
	f.phase = Submitting
	return f.email, true
}

// Settle applies the provider result of an in-flight submission.
// A nil error finishes the form; anything else returns it to Editing with the
// failure text kept until DismissFailure.
func (f *LoginForm) Settle(err error) {
	if f.phase != Submitting {
		return
	}
	if err == nil {
		f.phase = Done
		return
	}
	f.phase = Editing
	f.failure = failureText(err)
}

// Failure is the message awaiting acknowledgment, if any.
func (f *LoginForm) Failure() string { return f.failure }

func (f *LoginForm) DismissFailure() { f.failure = "" }

func failureText(err error) string {
	var fm FailureMessager
	if errors.As(err, &fm) {
		if msg := fm.FailureMessage(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}
