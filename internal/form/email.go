package form

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
)

var (
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validate   = validator.New()
)

// commonDomains are the mail hosts we offer corrections towards.
var commonDomains = []string{
	"gmail.com",
	"yahoo.com",
	"yahoo.co.in",
	"outlook.com",
	"hotmail.com",
	"icloud.com",
	"rediffmail.com",
}

// knownDomains are real hosts close enough to a common one to be mistaken
// for a typo.
var knownDomains = map[string]bool{
	"mail.com":  true,
	"gmx.com":   true,
	"ymail.com": true,
	"email.com": true,
	"live.com":  true,
	"aol.com":   true,
	"me.com":    true,
	"msn.com":   true,
	"zoho.com":  true,
	"yahoo.in":  true,
}

// ValidEmail reports whether s is a syntactically valid e-mail address.
// It never trims: surrounding whitespace makes the address invalid.
func ValidEmail(s string) bool {
	if !emailShape.MatchString(s) {
		return false
	}
	return validate.Var(s, "required,email") == nil
}

// SuggestDomain proposes a corrected address when the domain part is a near
// miss of a common mail host.
func SuggestDomain(s string) (string, bool) {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return "", false
	}
	local, domain := s[:at], strings.ToLower(s[at+1:])
	if knownDomains[domain] {
		return "", false
	}
	// short hosts get one edit; longer ones two
	best, bestDist := "", 2
	if len(domain) >= 9 {
		bestDist = 3
	}
	for _, d := range commonDomains {
		if d == domain {
			return "", false
		}
		if dist := levenshtein.ComputeDistance(domain, d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == "" {
		return "", false
	}
	return local + "@" + best, true
}
