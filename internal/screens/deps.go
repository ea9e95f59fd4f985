// Package screens holds one bubbletea screen per route and the table that
// maps routes to them.
package screens

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/smartbank/smartbank/internal/i18n"
	"github.com/smartbank/smartbank/internal/nav"
	"github.com/smartbank/smartbank/internal/ui"
)

// SignIn is the passwordless sign-in backend the screens drive.
type SignIn interface {
	RequestLink(ctx context.Context, email, redirectTo string) error
	VerifyCode(ctx context.Context, code string) (string, error)
	PendingEmail(ctx context.Context) (string, error)
}

// Deps is what every screen factory closes over.
type Deps struct {
	SignIn  SignIn
	Keys    *ui.KeyRegistry
	Catalog *i18n.Catalog
	Log     *slog.Logger

	// Redirect builds the deep link the provider puts in the e-mail.
	Redirect func() string
	// Timeout bounds one provider call.
	Timeout time.Duration
	// ResendInterval is the minimum gap between links for one address.
	ResendInterval time.Duration
	// CanVerify enables the one-time code route from ConfirmEmail.
	CanVerify bool
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Keys == nil {
		d.Keys = ui.NewKeyRegistry(ui.DefaultKeyBindings())
	}
	if d.Catalog == nil {
		d.Catalog = i18n.English()
	}
	if d.Log == nil {
		d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.Redirect == nil {
		d.Redirect = func() string { return "" }
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}
	if d.ResendInterval <= 0 {
		d.ResendInterval = time.Minute
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

var titleIDs = map[nav.RouteName]string{
	nav.OnBoarding:   "OnBoardingTitle",
	nav.Login:        "LoginTitle",
	nav.SignUp:       "SignUpTitle",
	nav.ConfirmEmail: "ConfirmTitle",
	nav.GetOTP:       "OTPTitle",
}

// RouteTitle is the localized name of a route, used for screen headings and
// the header trail.
func RouteTitle(c *i18n.Catalog, r nav.RouteName) string {
	if id, ok := titleIDs[r]; ok {
		return c.T(id)
	}
	return c.T("Route." + string(r))
}
