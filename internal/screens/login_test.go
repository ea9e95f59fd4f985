package screens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smartbank/smartbank/internal/auth"
	"github.com/smartbank/smartbank/internal/form"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

func TestOnBoardingOpensSignUpAndLogin(t *testing.T) {
	h := newHarness(t)
	require.Contains(t, h.view(), "Managing your money has never been so easy")

	h.press("esc")
	require.Equal(t, []nav.RouteName{nav.OnBoarding}, h.routes(), "the root has no back control")

	h.press("s")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.SignUp}, h.routes())
	require.Equal(t, ui.ScopeSignUp, h.top().Scope())

	h.press("esc")
	h.press("l")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login}, h.routes())
	require.Equal(t, ui.ScopeLogin, h.top().Scope())

	h.press("esc")
	require.Equal(t, []nav.RouteName{nav.OnBoarding}, h.routes())
}

func TestLoginFocusedOnMount(t *testing.T) {
	h := newHarness(t)
	s := h.openLogin()
	require.True(t, s.input.Focused())
	require.Contains(t, h.view(), "Enter the email address you use to sign in to SmartBank.")
}

func TestLoginSubmitRequiresValidEmail(t *testing.T) {
	h := newHarness(t)
	s := h.openLogin()

	h.press("enter")
	require.Zero(t, h.signIn.linkCount(), "empty address must not submit")

	h.typeText("a@")
	require.False(t, s.form.CanSubmit())
	h.press("enter")
	require.Zero(t, h.signIn.linkCount())
	require.Contains(t, h.view(), "Enter a valid email address")

	h.typeText("b.com")
	require.True(t, s.form.CanSubmit())
}

func TestLoginSuccessNavigatesToConfirmEmail(t *testing.T) {
	h := newHarness(t)
	h.openLogin()
	h.typeText("user@example.com")
	h.press("enter")

	require.Equal(t, []string{"user@example.com"}, h.signIn.links)
	require.Equal(t, []string{"smartbank://auth/callback?instance=test"}, h.signIn.redirects)
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login, nav.ConfirmEmail}, h.routes())
	cur, ok := h.router.Current()
	require.True(t, ok)
	require.Equal(t, nav.ConfirmEmailParams{Email: "user@example.com"}, cur.Params)
	require.Contains(t, h.view(), "We sent a sign-in link to user@example.com.")

	// the submitted Login was released; going back shows a fresh one
	h.press("esc")
	s, ok := h.top().(*emailEntry)
	require.True(t, ok)
	require.Equal(t, "", s.input.Value())
	require.Equal(t, form.Editing, s.form.Phase())
	require.True(t, s.input.Focused())
}

func TestLoginFailureShowsBlockingAlert(t *testing.T) {
	h := newHarness(t)
	s := h.openLogin()
	h.signIn.linkErr = &auth.RequestError{Op: "magiclink", Status: 429, Message: "Email rate limit exceeded"}

	h.typeText("user@example.com")
	h.press("enter")

	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login}, h.routes())
	require.Equal(t, ui.ScopeAlert, h.top().Scope())
	v := h.view()
	require.Contains(t, v, "An error occurred")
	require.Contains(t, v, "Email rate limit exceeded")
	require.Equal(t, form.Editing, s.form.Phase())
	require.False(t, s.form.CanSubmit(), "submit stays blocked until the alert is acknowledged")

	h.press("x")
	require.Equal(t, "user@example.com", s.input.Value(), "the alert swallows keys")

	h.press("esc")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login}, h.routes(), "esc dismisses the alert, not the screen")
	require.Equal(t, ui.ScopeLogin, h.top().Scope())
	require.Equal(t, "user@example.com", s.input.Value())

	h.signIn.linkErr = nil
	h.press("enter")
	require.Equal(t, nav.ConfirmEmail, h.routes()[len(h.routes())-1])
	require.Len(t, h.signIn.links, 2)
}

func TestLoginSubmittingLocksForm(t *testing.T) {
	h := newHarness(t)
	s := h.openLogin()
	h.typeText("user@example.com")

	pending := h.hold(keyMsg("enter"))
	require.Equal(t, form.Submitting, s.form.Phase())
	require.False(t, s.input.Focused())
	require.Contains(t, h.view(), "Sending link")

	h.typeText("zz")
	require.Equal(t, "user@example.com", s.input.Value())
	h.press("enter")
	h.press("ctrl+s")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login}, h.routes())

	h.drain(pending)
	require.Len(t, h.signIn.links, 1, "only one request per submission")
	require.Equal(t, nav.ConfirmEmail, h.routes()[2])
}

func TestLoginBackDuringSubmitDiscardsResult(t *testing.T) {
	h := newHarness(t)
	h.openLogin()
	h.typeText("user@example.com")
	pending := h.hold(keyMsg("enter"))

	h.press("esc")
	require.Equal(t, []nav.RouteName{nav.OnBoarding}, h.routes())

	h.drain(pending)
	require.Equal(t, []nav.RouteName{nav.OnBoarding}, h.routes())
	require.Equal(t, 1, h.signIn.canceled, "the call runs under the unmounted screen's cancelled context")
}

func TestLoginIgnoresResultFromAnotherInstance(t *testing.T) {
	h := newHarness(t)
	old := h.openLogin()
	h.press("esc")

	fresh := h.openLogin()
	require.NotSame(t, old, fresh)
	h.typeText("user@example.com")
	h.send(linkSentMsg{origin: old, seq: 1, email: "user@example.com"})
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login}, h.routes())
	require.Equal(t, form.Editing, fresh.form.Phase())

	pending := h.hold(keyMsg("enter"))
	h.send(linkSentMsg{origin: fresh, seq: fresh.seq + 1, email: "user@example.com"})
	require.Equal(t, form.Submitting, fresh.form.Phase(), "a result for another submission is stale")
	h.drain(pending)
	require.Equal(t, nav.ConfirmEmail, h.routes()[2])
}

func TestLoginTimeoutSurfacesAsFailure(t *testing.T) {
	h := newHarness(t, func(d *Deps) { d.Timeout = 5 * time.Millisecond })
	h.signIn.block = true
	h.openLogin()
	h.typeText("user@example.com")
	h.press("enter")

	require.Equal(t, ui.ScopeAlert, h.top().Scope())
	require.Contains(t, h.view(), "The request timed out")
}

func TestLoginDomainSuggestion(t *testing.T) {
	h := newHarness(t)
	s := h.openLogin()
	h.typeText("user@gmial.com")
	require.Contains(t, h.view(), "Did you mean user@gmail.com?")

	h.press("tab")
	require.Equal(t, "user@gmail.com", s.input.Value())
	require.Equal(t, "user@gmail.com", s.form.Email())
	require.NotContains(t, h.view(), "Did you mean")
}

func TestLoginSuggestionTrimsInput(t *testing.T) {
	h := newHarness(t)
	s := h.openLogin()
	h.typeText(" user@gmial.com")
	require.True(t, s.form.CanSubmit())

	h.press("tab")
	require.Equal(t, "user@gmail.com", s.input.Value())
	require.Equal(t, "user@gmail.com", s.form.Email())
	require.True(t, s.form.CanSubmit())
}

func TestLoginAndSignUpLinkToEachOther(t *testing.T) {
	h := newHarness(t)
	h.openLogin()
	h.press("ctrl+s")
	require.Equal(t, nav.SignUp, h.routes()[2])
	require.Contains(t, h.view(), "Already have an account?")

	h.press("ctrl+l")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login, nav.SignUp, nav.Login}, h.routes())

	h.press("esc")
	h.press("esc")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.Login}, h.routes())
}

func TestSignUpSubmitsLikeLogin(t *testing.T) {
	h := newHarness(t)
	h.press("s")
	h.typeText("new@example.com")
	h.press("enter")
	require.Equal(t, []nav.RouteName{nav.OnBoarding, nav.SignUp, nav.ConfirmEmail}, h.routes())
	require.Equal(t, []string{"new@example.com"}, h.signIn.links)
}
