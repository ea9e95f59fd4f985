package screens

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbank/smartbank/internal/auth"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/signin"
	"github.com/smartbank/smartbank/internal/ui"
)

const codeLength = 6

type pendingLoadedMsg struct {
	origin *getOTP
	email  string
	err    error
}

type codeVerifiedMsg struct {
	origin *getOTP
	email  string
	err    error
}

// getOTP completes the latest pending sign-in with the code from the e-mail.
type getOTP struct {
	deps Deps
	nav  nav.Navigator

	input     textinput.Model
	spin      spinner.Model
	email     string
	noPending bool
	verifying bool
	signedIn  bool
	alert     *alert

	ctx    context.Context
	cancel context.CancelFunc
}

func newGetOTP(d Deps, n nav.Navigator, _ any) nav.Screen {
	in := textinput.New()
	in.Placeholder = d.Catalog.T("OTPPlaceholder")
	in.Prompt = ""
	in.CharLimit = codeLength
	in.Width = codeLength + 8
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	return &getOTP{
		deps:   d,
		nav:    n,
		input:  in,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.Accent)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *getOTP) Title() string { return RouteTitle(s.deps.Catalog, nav.GetOTP) }

func (s *getOTP) Scope() string {
	switch {
	case s.alert != nil:
		return ui.ScopeAlert
	case s.signedIn:
		return ui.ScopeSignedIn
	default:
		return ui.ScopeOTP
	}
}

func (s *getOTP) Init() tea.Cmd {
	ctx, signIn := s.ctx, s.deps.SignIn
	return func() tea.Msg {
		email, err := signIn.PendingEmail(ctx)
		return pendingLoadedMsg{origin: s, email: email, err: err}
	}
}

func (s *getOTP) Unmount() { s.cancel() }

func (s *getOTP) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pendingLoadedMsg:
		if msg.origin != s {
			return nil
		}
		switch {
		case errors.Is(msg.err, signin.ErrNoPending):
			s.noPending = true
		case msg.err != nil:
			s.alert = newAlert(s.deps, auth.Message(msg.err))
		default:
			s.email = msg.email
		}
		return nil
	case codeVerifiedMsg:
		if msg.origin != s || !s.verifying {
			return nil
		}
		s.verifying = false
		if msg.err != nil {
			s.alert = newAlert(s.deps, auth.Message(msg.err))
			s.input.Reset()
			return nil
		}
		s.signedIn = true
		s.email = msg.email
		s.deps.Log.Info("sign-in completed")
		return nil
	case spinner.TickMsg:
		if !s.verifying {
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

func (s *getOTP) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := s.deps.Keys
	if s.alert != nil {
		if s.alert.dismissed(keys, msg) {
			s.alert = nil
			s.input.Focus()
		}
		return nil
	}
	if s.signedIn {
		// quitting is handled by the root model
		return nil
	}
	switch {
	case keys.IsAction(msg, ui.ActionBack, ui.ScopeOTP):
		s.nav.GoBack()
		return nil
	case keys.IsAction(msg, ui.ActionSubmit, ui.ScopeOTP):
		return s.verify()
	}
	if s.verifying || s.noPending {
		return nil
	}
	if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *getOTP) verify() tea.Cmd {
	code := s.input.Value()
	if s.verifying || s.noPending || len(code) != codeLength {
		return nil
	}
	s.verifying = true
	s.input.Blur()
	ctx, cancel := context.WithTimeout(s.ctx, s.deps.Timeout)
	signIn := s.deps.SignIn
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		defer cancel()
		email, err := signIn.VerifyCode(ctx, code)
		return codeVerifiedMsg{origin: s, email: email, err: err}
	})
}

func allDigits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *getOTP) View(width, height int) string {
	c := s.deps.Catalog
	wrap := max(10, min(width-4, 60))
	lines := []string{"", ui.Title.Render(c.T("OTPTitle"))}
	switch {
	case s.signedIn:
		lines = append(lines, "", ui.Success.Render(c.T("OTPSignedIn", map[string]any{"Email": s.email})))
	case s.noPending:
		lines = append(lines, ui.Subtitle.Width(wrap).Render(c.T("OTPNoPending")))
	default:
		lines = append(lines,
			ui.Subtitle.Width(wrap).Render(c.T("OTPBody", map[string]any{"Email": s.email})),
			"",
			ui.Input.Render(s.input.View()),
			"",
		)
		button := ui.Button(c.T("Continue"), len(s.input.Value()) == codeLength && !s.verifying)
		if s.verifying {
			button += " " + s.spin.View() + " " + ui.Muted.Render(c.T("OTPVerifying"))
		}
		lines = append(lines, button)
	}
	return overlayAlert(s.alert, indent(strings.Join(lines, "\n"), 2), width, height)
}
