// Package transport provides an http.RoundTripper that authorizes requests
// through a token broker. A request is probed unauthenticated; a 401
// challenge resolves the required scopes, fetches a covering token and
// replays the request once with a bearer header.
package transport
