package nav

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/smartbank/smartbank/internal/form"
)

// RouteName identifies a reachable screen.
type RouteName string

const (
	OnBoarding   RouteName = "OnBoarding"
	Login        RouteName = "Login"
	SignUp       RouteName = "SignUp"
	ConfirmEmail RouteName = "ConfirmEmail"
	GetOTP       RouteName = "GetOTP"

	BhimUPI       RouteName = "BhimUPI"
	PayToContacts RouteName = "PayToContacts"
	Insurance     RouteName = "InsuranceScreen"
	NetBanking    RouteName = "NetBankingScreen"
	BankHolidays  RouteName = "BankHolidaysScreen"
	Calculator    RouteName = "CalculatorScreen"
	DepositRates  RouteName = "DepositRatesScreen"
	OnlinePayment RouteName = "OnlinePaymentScreen"
	ViewIFSC      RouteName = "View_ifsc"
	QRCodeScanner RouteName = "QRCodeScanner"
)

var allRoutes = []RouteName{
	OnBoarding, Login, SignUp, ConfirmEmail, GetOTP,
	BhimUPI, PayToContacts, Insurance, NetBanking, BankHolidays,
	Calculator, DepositRates, OnlinePayment, ViewIFSC, QRCodeScanner,
}

// Routes returns every route name in declaration order.
func Routes() []RouteName {
	return append([]RouteName(nil), allRoutes...)
}

// ParseRoute maps a configured name onto the closed route set.
func ParseRoute(s string) (RouteName, bool) {
	for _, r := range allRoutes {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ConfirmEmailParams accompany a transition to ConfirmEmail.
type ConfirmEmailParams struct {
	Email string
}

// Schema describes the parameters a route accepts. A nil Params type means
// the route takes no parameters.
type Schema struct {
	Params   reflect.Type
	Validate func(params any) error
}

// Check reports whether params conform to the schema.
func (s Schema) Check(params any) error {
	if s.Params == nil {
		if params != nil {
			return fmt.Errorf("takes no params, got %T", params)
		}
		return nil
	}
	if params == nil {
		return fmt.Errorf("requires %s, got none", s.Params)
	}
	if reflect.TypeOf(params) != s.Params {
		return fmt.Errorf("requires %s, got %T", s.Params, params)
	}
	if s.Validate != nil {
		return s.Validate(params)
	}
	return nil
}

// Table maps every route to its parameter schema. It is read-only once built.
type Table struct {
	schemas map[RouteName]Schema
}

// Lookup returns the schema registered for name.
func (t Table) Lookup(name RouteName) (Schema, bool) {
	s, ok := t.schemas[name]
	return s, ok
}

// Names returns the routes in the table in declaration order.
func (t Table) Names() []RouteName {
	out := make([]RouteName, 0, len(t.schemas))
	for _, r := range allRoutes {
		if _, ok := t.schemas[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// DefaultTable is the shipped route table.
func DefaultTable() Table {
	schemas := make(map[RouteName]Schema, len(allRoutes))
	for _, r := range allRoutes {
		schemas[r] = Schema{}
	}
	schemas[ConfirmEmail] = Schema{
		Params:   reflect.TypeOf(ConfirmEmailParams{}),
		Validate: validateConfirmEmail,
	}
	return Table{schemas: schemas}
}

var errBadEmail = errors.New("email is not a valid address")

func validateConfirmEmail(params any) error {
	p := params.(ConfirmEmailParams)
	if !form.ValidEmail(p.Email) {
		return fmt.Errorf("%w: %q", errBadEmail, p.Email)
	}
	return nil
}

// ContractViolation is raised when a transition does not match the route
// table. It signals a programming error.
type ContractViolation struct {
	Route  RouteName
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("nav: route %q: %s", e.Route, e.Reason)
}
