package screens

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/smartbank/smartbank/internal/auth"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

type resentMsg struct {
	origin *confirmEmail
	seq    int
	err    error
}

// confirmEmail tells the user where the link went and lets them ask for
// another one, at most once per resend interval.
type confirmEmail struct {
	deps  Deps
	nav   nav.Navigator
	email string

	limiter *rate.Limiter
	spin    spinner.Model
	sending bool
	seq     int
	status  string
	alert   *alert

	ctx    context.Context
	cancel context.CancelFunc
}

func newConfirmEmail(d Deps, n nav.Navigator, params any) nav.Screen {
	p := params.(nav.ConfirmEmailParams)
	lim := rate.NewLimiter(rate.Every(d.ResendInterval), 1)
	// the link that brought us here counts against the limit
	lim.AllowN(d.Now(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	return &confirmEmail{
		deps:    d,
		nav:     n,
		email:   p.Email,
		limiter: lim,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.Accent)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *confirmEmail) Title() string { return RouteTitle(s.deps.Catalog, nav.ConfirmEmail) }

func (s *confirmEmail) Scope() string {
	if s.alert != nil {
		return ui.ScopeAlert
	}
	return ui.ScopeConfirm
}

func (s *confirmEmail) Unmount() { s.cancel() }

func (s *confirmEmail) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case resentMsg:
		if msg.origin != s || msg.seq != s.seq || !s.sending {
			return nil
		}
		s.sending = false
		if msg.err != nil {
			s.status = ""
			s.alert = newAlert(s.deps, auth.Message(msg.err))
			return nil
		}
		s.status = s.deps.Catalog.T("ConfirmResent")
		return nil
	case spinner.TickMsg:
		if !s.sending {
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

func (s *confirmEmail) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := s.deps.Keys
	if s.alert != nil {
		if s.alert.dismissed(keys, msg) {
			s.alert = nil
		}
		return nil
	}
	switch {
	case keys.IsAction(msg, ui.ActionBack, ui.ScopeConfirm):
		s.nav.GoBack()
	case keys.IsAction(msg, ui.ActionEnterCode, ui.ScopeConfirm):
		// results are only delivered to the top screen
		if s.deps.CanVerify && !s.sending {
			s.nav.Navigate(nav.GetOTP, nil)
		}
	case keys.IsAction(msg, ui.ActionResend, ui.ScopeConfirm):
		return s.resend()
	}
	return nil
}

func (s *confirmEmail) resend() tea.Cmd {
	if s.sending {
		return nil
	}
	now := s.deps.Now()
	r := s.limiter.ReserveN(now, 1)
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		s.status = s.deps.Catalog.T("ConfirmResendWait", map[string]any{"Wait": wait.Round(time.Second).String()})
		return nil
	}

	s.sending = true
	s.seq++
	s.status = ""
	seq, email := s.seq, s.email
	ctx, cancel := context.WithTimeout(s.ctx, s.deps.Timeout)
	redirect := s.deps.Redirect()
	signIn := s.deps.SignIn
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		defer cancel()
		return resentMsg{origin: s, seq: seq, err: signIn.RequestLink(ctx, email, redirect)}
	})
}

func (s *confirmEmail) View(width, height int) string {
	c := s.deps.Catalog
	wrap := max(10, min(width-4, 60))
	lines := []string{
		"",
		ui.Title.Render(c.T("ConfirmTitle")),
		ui.Subtitle.Width(wrap).Render(c.T("ConfirmBody", map[string]any{"Email": s.email})),
		ui.Subtitle.Width(wrap).Render(c.T("ConfirmHint")),
		"",
	}
	switch {
	case s.sending:
		lines = append(lines, s.spin.View()+" "+ui.Muted.Render(c.T("ConfirmResending")))
	case s.status != "":
		lines = append(lines, ui.Accent.Render(s.status))
	}
	return overlayAlert(s.alert, indent(strings.Join(lines, "\n"), 2), width, height)
}
