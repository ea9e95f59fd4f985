package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding ties keys to an action in one or more screen scopes. An empty
// Scopes list or "*" matches every scope.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

func (b KeyBinding) binding() key.Binding {
	keys := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		keys = append(keys, normalizeKey(k))
	}
	help := ""
	if len(b.Keys) > 0 {
		help = b.Keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, b.Description))
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

// BindingsForScope lists the bindings shown in the footer for scope,
// skipping entries without a description.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if b.Description != "" && scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// IsAction reports whether msg triggers action in scope.
func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		if key.Matches(msg, b.binding()) {
			return true
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
