package screens

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/smartbank/smartbank/internal/auth"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/signin"
)

type fakeSignIn struct {
	mu        sync.Mutex
	linkErr   error
	verifyErr error
	block     bool
	pending   string
	links     []string
	redirects []string
	codes     []string
	canceled  int
}

func (f *fakeSignIn) RequestLink(ctx context.Context, email, redirectTo string) error {
	f.mu.Lock()
	f.links = append(f.links, email)
	f.redirects = append(f.redirects, redirectTo)
	block, linkErr := f.block, f.linkErr
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return &auth.RequestError{Op: "magiclink", Message: "The request timed out", Err: ctx.Err()}
	}
	if err := ctx.Err(); err != nil {
		f.mu.Lock()
		f.canceled++
		f.mu.Unlock()
		return err
	}
	if linkErr != nil {
		return linkErr
	}
	f.mu.Lock()
	f.pending = email
	f.mu.Unlock()
	return nil
}

func (f *fakeSignIn) VerifyCode(_ context.Context, code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	if f.pending == "" {
		return "", signin.ErrNoPending
	}
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.pending, nil
}

func (f *fakeSignIn) PendingEmail(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending == "" {
		return "", signin.ErrNoPending
	}
	return f.pending, nil
}

func (f *fakeSignIn) linkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.links)
}

// harness plays the part of the root model: messages go to the top screen
// and queued mount commands are flushed after every update.
type harness struct {
	t      *testing.T
	router *nav.Router
	signIn *fakeSignIn
	now    time.Time
}

func newHarness(t *testing.T, configure ...func(*Deps)) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		signIn: &fakeSignIn{},
		now:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	d := Deps{
		SignIn:    h.signIn,
		Redirect:  func() string { return "smartbank://auth/callback?instance=test" },
		CanVerify: true,
		Now:       func() time.Time { return h.now },
	}
	for _, c := range configure {
		c(&d)
	}
	r, err := nav.New(nav.DefaultTable(), Factories(d), nil)
	require.NoError(t, err)
	require.NoError(t, r.Start(nav.OnBoarding, nil))
	h.router = r
	h.drain(r.Flush())
	return h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	top := h.router.Top()
	if top == nil {
		return nil
	}
	return top.Update(msg)
}

// hold delivers msg and returns the resulting commands without running them.
func (h *harness) hold(msg tea.Msg) tea.Cmd {
	cmd := h.update(msg)
	return tea.Batch(cmd, h.router.Flush())
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	h.drain(h.hold(msg))
}

func (h *harness) press(k string) {
	h.t.Helper()
	h.send(keyMsg(k))
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs commands breadth first. Spinner frames are delivered once and
// their follow-up ticks dropped.
func (h *harness) drain(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 64 {
			h.t.Fatal("command chain exceeded max depth")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
			h.update(msg)
		default:
			queue = append(queue, h.hold(msg))
		}
	}
}

func (h *harness) routes() []nav.RouteName {
	var out []nav.RouteName
	for _, e := range h.router.History() {
		out = append(out, e.Route)
	}
	return out
}

func (h *harness) top() nav.Screen {
	return h.router.Top()
}

func (h *harness) view() string {
	return ansi.Strip(h.router.Top().View(100, 30))
}

func (h *harness) openLogin() *emailEntry {
	h.t.Helper()
	h.press("l")
	s, ok := h.top().(*emailEntry)
	require.True(h.t, ok, "top is %T", h.top())
	return s
}
