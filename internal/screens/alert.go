package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbank/smartbank/internal/ui"
)

// alert is a blocking acknowledgment. While one is open the owning screen
// hands it every key and reports ui.ScopeAlert.
type alert struct {
	title   string
	message string
	ok      string
}

func newAlert(d Deps, message string) *alert {
	return &alert{title: d.Catalog.T("AlertTitle"), message: message, ok: d.Catalog.T("AlertOK")}
}

// dismissed reports whether msg closes the alert. Every other key is swallowed.
func (a *alert) dismissed(keys *ui.KeyRegistry, msg tea.KeyMsg) bool {
	return keys.IsAction(msg, ui.ActionDismiss, ui.ScopeAlert)
}

func (a *alert) view() string {
	var b strings.Builder
	b.WriteString(ui.Title.Render(a.title))
	b.WriteString("\n\n")
	b.WriteString(a.message)
	b.WriteString("\n\n")
	b.WriteString(ui.PrimaryButton.Render(a.ok))
	return b.String()
}

func overlayAlert(a *alert, base string, width, height int) string {
	if a == nil {
		return base
	}
	return ui.RenderPopup(base, a.view(), width, height)
}
