package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbank/smartbank/internal/form"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

type entryKind int

const (
	entryLogin entryKind = iota
	entrySignUp
)

// linkSentMsg carries the outcome of one submission back to the screen
// instance and submission that started it.
type linkSentMsg struct {
	origin *emailEntry
	seq    int
	email  string
	err    error
}

// emailEntry is the Login screen and, with sign-up copy, the SignUp screen.
// Both collect an address and ask the provider for a magic link.
type emailEntry struct {
	deps Deps
	nav  nav.Navigator
	kind entryKind

	form  *form.LoginForm
	input textinput.Model
	spin  spinner.Model
	alert *alert

	// ctx lives as long as the mounted instance; Unmount cancels any call
	// still in flight.
	ctx    context.Context
	cancel context.CancelFunc
	seq    int
}

func newLogin(d Deps, n nav.Navigator, _ any) nav.Screen {
	return newEmailEntry(d, n, entryLogin)
}

func newSignUp(d Deps, n nav.Navigator, _ any) nav.Screen {
	return newEmailEntry(d, n, entrySignUp)
}

func newEmailEntry(d Deps, n nav.Navigator, kind entryKind) *emailEntry {
	in := textinput.New()
	in.Placeholder = d.Catalog.T("EmailPlaceholder")
	in.Prompt = ""
	in.CharLimit = 254
	in.Width = 40
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	return &emailEntry{
		deps:   d,
		nav:    n,
		kind:   kind,
		form:   form.NewLoginForm(),
		input:  in,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.Accent)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *emailEntry) route() nav.RouteName {
	if s.kind == entrySignUp {
		return nav.SignUp
	}
	return nav.Login
}

func (s *emailEntry) Title() string { return RouteTitle(s.deps.Catalog, s.route()) }

func (s *emailEntry) Scope() string {
	switch {
	case s.alert != nil:
		return ui.ScopeAlert
	case s.kind == entrySignUp:
		return ui.ScopeSignUp
	default:
		return ui.ScopeLogin
	}
}

// ReleaseOnLeave drops the screen once its submission succeeded, so going
// back from ConfirmEmail shows a fresh form.
func (s *emailEntry) ReleaseOnLeave() bool { return s.form.Phase() == form.Done }

func (s *emailEntry) Unmount() {
	s.cancel()
	s.input.Blur()
}

func (s *emailEntry) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case linkSentMsg:
		return s.settle(msg)
	case spinner.TickMsg:
		if s.form.Phase() != form.Submitting {
			return nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *emailEntry) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := s.deps.Keys
	if s.alert != nil {
		if s.alert.dismissed(keys, msg) {
			s.alert = nil
			s.form.DismissFailure()
			s.input.Focus()
		}
		return nil
	}

	scope := s.Scope()
	switch {
	case keys.IsAction(msg, ui.ActionBack, scope):
		s.nav.GoBack()
		return nil
	case keys.IsAction(msg, ui.ActionSubmit, scope):
		return s.submit()
	}
	if !s.form.Editable() {
		return nil
	}
	switch {
	case keys.IsAction(msg, ui.ActionSuggestion, scope):
		if fixed, ok := form.SuggestDomain(strings.TrimSpace(s.input.Value())); ok {
			s.input.SetValue(fixed)
			s.input.CursorEnd()
			s.form.SetEmail(fixed)
		}
		return nil
	case s.kind == entryLogin && keys.IsAction(msg, ui.ActionSignUp, scope):
		s.nav.Navigate(nav.SignUp, nil)
		return nil
	case s.kind == entrySignUp && keys.IsAction(msg, ui.ActionLogIn, scope):
		s.nav.Navigate(nav.Login, nil)
		return nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.form.SetEmail(strings.TrimSpace(s.input.Value()))
	return cmd
}

func (s *emailEntry) submit() tea.Cmd {
	email, ok := s.form.BeginSubmit()
	if !ok {
		return nil
	}
	s.input.Blur()
	s.seq++
	s.deps.Log.Debug("requesting sign-in link", "route", s.route(), "seq", s.seq)
	return tea.Batch(s.spin.Tick, s.requestLink(email, s.seq))
}

func (s *emailEntry) requestLink(email string, seq int) tea.Cmd {
	ctx, cancel := context.WithTimeout(s.ctx, s.deps.Timeout)
	redirect := s.deps.Redirect()
	signIn := s.deps.SignIn
	return func() tea.Msg {
		defer cancel()
		err := signIn.RequestLink(ctx, email, redirect)
		return linkSentMsg{origin: s, seq: seq, email: email, err: err}
	}
}

func (s *emailEntry) settle(msg linkSentMsg) tea.Cmd {
	if msg.origin != s || msg.seq != s.seq || s.form.Phase() != form.Submitting {
		s.deps.Log.Debug("discarding stale sign-in result", "route", s.route(), "seq", msg.seq)
		return nil
	}
	s.form.Settle(msg.err)
	if msg.err != nil {
		s.alert = newAlert(s.deps, s.form.Failure())
		return nil
	}
	s.nav.Navigate(nav.ConfirmEmail, nav.ConfirmEmailParams{Email: msg.email})
	return nil
}

func (s *emailEntry) View(width, height int) string {
	c := s.deps.Catalog
	wrap := max(10, min(width-4, 60))

	title, subtitle := c.T("LoginTitle"), c.T("LoginSubtitle")
	prompt, link, linkKey := c.T("LoginNoAccount"), c.T("LoginSignUpLink"), "ctrl+s"
	if s.kind == entrySignUp {
		title, subtitle = c.T("SignUpTitle"), c.T("SignUpSubtitle")
		prompt, link, linkKey = c.T("SignUpHaveAccount"), c.T("SignUpLoginLink"), "ctrl+l"
	}

	lines := []string{
		"",
		ui.Title.Render(title),
		ui.Subtitle.Width(wrap).Render(subtitle),
		"",
		ui.Input.Width(min(wrap, 48)).Render(s.input.View()),
		s.hint(),
		ui.Subtitle.Render(prompt+" ") + ui.Link.Render(link) + " " + ui.Muted.Render(linkKey),
		"",
	}
	button := ui.Button(c.T("Continue"), s.form.CanSubmit())
	if s.form.Phase() == form.Submitting {
		button = ui.Button(c.T("Continue"), false) + " " + s.spin.View() + " " + ui.Muted.Render(c.T("SendingLink"))
	}
	lines = append(lines, button)

	return overlayAlert(s.alert, indent(strings.Join(lines, "\n"), 2), width, height)
}

func (s *emailEntry) hint() string {
	value := strings.TrimSpace(s.input.Value())
	if value == "" || s.form.Phase() != form.Editing {
		return ""
	}
	if fixed, ok := form.SuggestDomain(value); ok {
		return ui.Accent.Render(s.deps.Catalog.T("EmailSuggestion", map[string]any{"Suggestion": fixed})) +
			" " + ui.Muted.Render("tab")
	}
	if !s.form.Valid() {
		return ui.Error.Render(s.deps.Catalog.T("EmailInvalid"))
	}
	return ""
}
