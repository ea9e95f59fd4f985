package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smartbank/smartbank/internal/i18n"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Router is the navigation stack the app renders.
type Router interface {
	Top() nav.Screen
	History() []nav.Entry
	Flush() tea.Cmd
}

// App is the root model. It owns the window and global keys and hands
// every other message to the screen on top of the stack.
type App struct {
	router  Router
	keys    *ui.KeyRegistry
	catalog *i18n.Catalog
	titles  func(nav.RouteName) string
	width   int
	height  int
}

func New(router Router, keys *ui.KeyRegistry, catalog *i18n.Catalog, titles func(nav.RouteName) string) *App {
	if titles == nil {
		titles = func(r nav.RouteName) string { return string(r) }
	}
	return &App{router: router, keys: keys, catalog: catalog, titles: titles}
}

func (a *App) Init() tea.Cmd {
	return a.router.Flush()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	top := a.router.Top()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if top != nil && a.keys.IsAction(msg, ui.ActionQuit, top.Scope()) {
			return a, tea.Quit
		}
	}
	if top == nil {
		return a, nil
	}
	cmd := top.Update(msg)
	return a, tea.Batch(cmd, a.router.Flush())
}

func (a *App) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (a *App) View() string {
	w, h := a.size()
	top := a.router.Top()
	if top == nil {
		return ""
	}

	history := a.router.History()
	trail := make([]string, 0, len(history))
	for _, e := range history {
		trail = append(trail, a.titles(e.Route))
	}
	header := ui.RenderHeader(a.catalog.T("AppName"), trail, w)
	footer := ui.RenderFooter(a.keys, top.Scope(), w)

	bodyH := max(1, h-lipgloss.Height(header)-lipgloss.Height(footer))
	body := ui.ClipHeight(top.View(w, bodyH), bodyH)
	if n := lipgloss.Height(body); n < bodyH {
		body += strings.Repeat("\n", bodyH-n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
