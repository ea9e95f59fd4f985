package nav

import tea "github.com/charmbracelet/bubbletea"

// Screen is a mounted route. Screens receive their Navigator at construction
// and drive transitions themselves.
type Screen interface {
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Scope() string
	Title() string
}

// Initializer screens return a command to run once when mounted.
type Initializer interface {
	Init() tea.Cmd
}

// Unmounter screens are told when their state is destroyed.
type Unmounter interface {
	Unmount()
}

// Releaser screens may ask to be destroyed when covered by a new route. A
// released entry keeps its route and params and is rebuilt when revealed.
type Releaser interface {
	ReleaseOnLeave() bool
}

// Navigator is the handle every screen receives.
type Navigator interface {
	Navigate(name RouteName, params any)
	GoBack()
	CanGoBack() bool
}

// Factory builds the screen for a route.
type Factory func(n Navigator, params any) Screen
