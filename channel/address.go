package channel

import (
	"net/url"
	"strings"
)

// TokenAddress builds the logical address of a token request for the given
// scopes and client identity. Scopes are joined with commas and carried
// verbatim, so a scope must not contain characters with query semantics.
func TokenAddress(scopes []string, clientID, deviceID string) string {
	return "token/authenticated?scope=" + strings.Join(scopes, ",") +
		"&client_id=" + clientID + "&device_id=" + deviceID
}

// SplitAddress splits a logical address into its path and query parameters.
// Channel servers use it to interpret addresses delivered over transports
// without native URL routing.
func SplitAddress(address string) (string, url.Values, error) {
	parsed, err := url.Parse(address)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimPrefix(parsed.Path, "/"), parsed.Query(), nil
}
