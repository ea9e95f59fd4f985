package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

// onBoarding is the welcome screen. It is the stack root and has no back
// control.
type onBoarding struct {
	deps Deps
	nav  nav.Navigator
}

func newOnBoarding(d Deps, n nav.Navigator, _ any) nav.Screen {
	return &onBoarding{deps: d, nav: n}
}

func (s *onBoarding) Title() string { return RouteTitle(s.deps.Catalog, nav.OnBoarding) }
func (s *onBoarding) Scope() string { return ui.ScopeOnBoarding }

func (s *onBoarding) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case s.deps.Keys.IsAction(key, ui.ActionSignUp, ui.ScopeOnBoarding):
		s.nav.Navigate(nav.SignUp, nil)
	case s.deps.Keys.IsAction(key, ui.ActionLogIn, ui.ScopeOnBoarding):
		s.nav.Navigate(nav.Login, nil)
	}
	return nil
}

func (s *onBoarding) View(width, height int) string {
	c := s.deps.Catalog
	wrap := max(10, min(width-4, 60))
	lines := []string{
		"",
		ui.Subtitle.Render(c.T("OnBoardingWelcome")),
		ui.Title.Width(wrap).Render(c.T("OnBoardingHeadline")),
		"",
		"",
		ui.PrimaryButton.Render(c.T("OnBoardingSignUp")) + "  " + ui.Muted.Render("s"),
		"",
		ui.SecondaryButton.Render(c.T("OnBoardingLogIn")) + "  " + ui.Muted.Render("l"),
	}
	return indent(strings.Join(lines, "\n"), 2)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
