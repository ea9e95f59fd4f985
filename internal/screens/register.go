package screens

import "github.com/smartbank/smartbank/internal/nav"

var leafRoutes = []nav.RouteName{
	nav.BhimUPI, nav.PayToContacts, nav.Insurance, nav.NetBanking, nav.BankHolidays,
	nav.Calculator, nav.DepositRates, nav.OnlinePayment, nav.ViewIFSC, nav.QRCodeScanner,
}

// Factories maps every route of nav.DefaultTable to its screen.
func Factories(d Deps) map[nav.RouteName]nav.Factory {
	d = d.withDefaults()
	bind := func(f func(Deps, nav.Navigator, any) nav.Screen) nav.Factory {
		return func(n nav.Navigator, params any) nav.Screen { return f(d, n, params) }
	}
	out := map[nav.RouteName]nav.Factory{
		nav.OnBoarding:   bind(newOnBoarding),
		nav.Login:        bind(newLogin),
		nav.SignUp:       bind(newSignUp),
		nav.ConfirmEmail: bind(newConfirmEmail),
		nav.GetOTP:       bind(newGetOTP),
	}
	for _, r := range leafRoutes {
		out[r] = leafFactory(d, r)
	}
	return out
}
