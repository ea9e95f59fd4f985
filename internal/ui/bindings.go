package ui

const (
	ActionQuit       = "quit"
	ActionBack       = "back"
	ActionSignUp     = "sign-up"
	ActionLogIn      = "log-in"
	ActionSubmit     = "submit"
	ActionSuggestion = "accept-suggestion"
	ActionResend     = "resend"
	ActionEnterCode  = "enter-code"
	ActionDismiss    = "dismiss"
)

// Screen scopes.
const (
	ScopeOnBoarding = "screen:onboarding"
	ScopeLogin      = "screen:login"
	ScopeSignUp     = "screen:signup"
	ScopeConfirm    = "screen:confirm-email"
	ScopeOTP        = "screen:otp"
	ScopeSignedIn   = "screen:signed-in"
	ScopeLeaf       = "screen:leaf"
	ScopeAlert      = "screen:alert"
)

var emailEntry = []string{ScopeLogin, ScopeSignUp}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: ActionQuit, Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"s"}, Action: ActionSignUp, Description: "sign up", Scopes: []string{ScopeOnBoarding}},
		{Keys: []string{"l"}, Action: ActionLogIn, Description: "log in", Scopes: []string{ScopeOnBoarding}},
		{Keys: []string{"enter"}, Action: ActionSubmit, Description: "continue", Scopes: append(emailEntry, ScopeOTP)},
		{Keys: []string{"tab"}, Action: ActionSuggestion, Description: "fix domain", Scopes: emailEntry},
		{Keys: []string{"ctrl+s"}, Action: ActionSignUp, Description: "sign up", Scopes: []string{ScopeLogin}},
		{Keys: []string{"ctrl+l"}, Action: ActionLogIn, Description: "log in", Scopes: []string{ScopeSignUp}},
		{Keys: []string{"r"}, Action: ActionResend, Description: "resend link", Scopes: []string{ScopeConfirm}},
		{Keys: []string{"c"}, Action: ActionEnterCode, Description: "enter code", Scopes: []string{ScopeConfirm}},
		{Keys: []string{"esc"}, Action: ActionBack, Description: "back", Scopes: append(emailEntry, ScopeConfirm, ScopeOTP, ScopeLeaf)},
		{Keys: []string{"enter", "esc"}, Action: ActionDismiss, Description: "ok", Scopes: []string{ScopeAlert}},
		{Keys: []string{"enter"}, Action: ActionQuit, Description: "quit", Scopes: []string{ScopeSignedIn}},
	}
}
