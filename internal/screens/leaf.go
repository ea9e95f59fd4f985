package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

// leaf is a banking utility that has no content yet.
type leaf struct {
	deps  Deps
	nav   nav.Navigator
	route nav.RouteName
}

func leafFactory(d Deps, route nav.RouteName) nav.Factory {
	return func(n nav.Navigator, _ any) nav.Screen {
		return &leaf{deps: d, nav: n, route: route}
	}
}

func (s *leaf) Title() string { return RouteTitle(s.deps.Catalog, s.route) }
func (s *leaf) Scope() string { return ui.ScopeLeaf }

func (s *leaf) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && s.deps.Keys.IsAction(key, ui.ActionBack, ui.ScopeLeaf) {
		s.nav.GoBack()
	}
	return nil
}

func (s *leaf) View(width, height int) string {
	return indent("\n"+ui.Title.Render(s.Title())+"\n\n"+ui.Muted.Render(s.deps.Catalog.T("ComingSoon")), 2)
}
