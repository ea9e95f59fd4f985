package auth

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// RedirectURL builds the deep link the provider sends the user back to after
// confirming their address, e.g. smartbank://auth/callback?instance=<id>.
func RedirectURL(scheme, path string, instance uuid.UUID) string {
	u := url.URL{Scheme: strings.TrimSuffix(scheme, "://")}
	path = strings.Trim(path, "/")
	if host, rest, ok := strings.Cut(path, "/"); ok {
		u.Host = host
		u.Path = "/" + rest
	} else {
		u.Host = path
	}
	if instance != uuid.Nil {
		u.RawQuery = url.Values{"instance": {instance.String()}}.Encode()
	}
	return u.String()
}
