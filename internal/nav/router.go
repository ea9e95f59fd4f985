package nav

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Entry is one frame of the back-stack.
type Entry struct {
	Route  RouteName
	Params any

	screen Screen
}

// Router owns the single navigation stack of the app.
type Router struct {
	table     Table
	factories map[RouteName]Factory
	entries   []Entry
	pending   []tea.Cmd
	log       *slog.Logger
}

// New checks that every route in table has exactly one factory and that no
// factory targets a route outside it.
func New(table Table, factories map[RouteName]Factory, logger *slog.Logger) (*Router, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, name := range table.Names() {
		if factories[name] == nil {
			return nil, fmt.Errorf("nav: route %q has no screen registered", name)
		}
	}
	owned := make(map[RouteName]Factory, len(factories))
	for name, f := range factories {
		if _, ok := table.Lookup(name); !ok {
			return nil, fmt.Errorf("nav: screen registered for unknown route %q", name)
		}
		owned[name] = f
	}
	return &Router{table: table, factories: owned, log: logger}, nil
}

// Start resets the stack to a single entry for the initial route.
func (r *Router) Start(initial RouteName, params any) error {
	schema, ok := r.table.Lookup(initial)
	if !ok {
		return fmt.Errorf("nav: unknown initial route %q", initial)
	}
	if err := schema.Check(params); err != nil {
		return fmt.Errorf("nav: initial route %q: %w", initial, err)
	}
	for i := len(r.entries) - 1; i >= 0; i-- {
		r.unmount(&r.entries[i])
	}
	r.entries = r.entries[:0]
	r.push(initial, params)
	return nil
}

// Navigate pushes name onto the stack. Params that do not satisfy the route
// schema are a programming error and panic with *ContractViolation.
func (r *Router) Navigate(name RouteName, params any) {
	schema, ok := r.table.Lookup(name)
	if !ok {
		panic(&ContractViolation{Route: name, Reason: "not in route table"})
	}
	if err := schema.Check(params); err != nil {
		panic(&ContractViolation{Route: name, Reason: err.Error()})
	}
	if top := r.topEntry(); top != nil {
		if rel, ok := top.screen.(Releaser); ok && rel.ReleaseOnLeave() {
			r.unmount(top)
		}
	}
	r.push(name, params)
	r.log.Debug("navigate", "route", name, "depth", len(r.entries))
}

// GoBack pops the top entry. At the root it does nothing.
func (r *Router) GoBack() {
	if len(r.entries) <= 1 {
		return
	}
	last := len(r.entries) - 1
	r.unmount(&r.entries[last])
	r.entries = r.entries[:last]
	top := r.topEntry()
	if top.screen == nil {
		r.mount(top)
	}
	r.log.Debug("go back", "route", top.Route, "depth", len(r.entries))
}

func (r *Router) CanGoBack() bool {
	return len(r.entries) > 1
}

// Top returns the visible screen, or nil before Start.
func (r *Router) Top() Screen {
	if top := r.topEntry(); top != nil {
		return top.screen
	}
	return nil
}

// Current returns the visible entry.
func (r *Router) Current() (Entry, bool) {
	if top := r.topEntry(); top != nil {
		return Entry{Route: top.Route, Params: top.Params}, true
	}
	return Entry{}, false
}

func (r *Router) Depth() int {
	return len(r.entries)
}

// History returns the stack bottom to top.
func (r *Router) History() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Route: e.Route, Params: e.Params}
	}
	return out
}

// Flush drains the init commands of screens mounted since the last call.
func (r *Router) Flush() tea.Cmd {
	if len(r.pending) == 0 {
		return nil
	}
	cmds := r.pending
	r.pending = nil
	return tea.Batch(cmds...)
}

func (r *Router) push(name RouteName, params any) {
	r.entries = append(r.entries, Entry{Route: name, Params: params})
	r.mount(&r.entries[len(r.entries)-1])
}

func (r *Router) mount(e *Entry) {
	e.screen = r.factories[e.Route](r, e.Params)
	if init, ok := e.screen.(Initializer); ok {
		if cmd := init.Init(); cmd != nil {
			r.pending = append(r.pending, cmd)
		}
	}
}

func (r *Router) unmount(e *Entry) {
	if e.screen == nil {
		return
	}
	if u, ok := e.screen.(Unmounter); ok {
		u.Unmount()
	}
	e.screen = nil
}

func (r *Router) topEntry() *Entry {
	if len(r.entries) == 0 {
		return nil
	}
	return &r.entries[len(r.entries)-1]
}
