package transport

import (
	"net/http"
	"strings"
)

// Scoper resolves the scopes an individual request needs, letting one
// round tripper serve endpoints with different capability requirements.
type Scoper interface {
	Scopes(req *http.Request) []string
}

// ScoperFunc adapts an ordinary function to the Scoper interface.
type ScoperFunc func(req *http.Request) []string

func (f ScoperFunc) Scopes(req *http.Request) []string {
	return f(req)
}

// parseChallengeScopes extracts the space separated scope parameter of a
// bearer challenge, e.g.
// WWW-Authenticate: Bearer realm="issuer", scope="streaming user-read-email".
func parseChallengeScopes(resp *http.Response) []string {
	authenticateHeader := resp.Header.Get("WWW-Authenticate")
	authenticateHeader = strings.TrimPrefix(authenticateHeader, "Bearer ")
	for _, part := range strings.Split(authenticateHeader, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "scope=") {
			return strings.Fields(strings.Trim(strings.TrimPrefix(part, "scope="), "\""))
		}
	}
	return nil
}
