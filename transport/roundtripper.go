package transport

import (
	"fmt"
	"net/http"

	"github.com/viant/keymaster/broker"
)

// RoundTripper authorizes outgoing requests through a token broker. Requests
// are first sent unauthenticated; a 401 triggers one token fetch and one
// replay with a bearer header, never more.
type RoundTripper struct {
	broker    *broker.Broker
	scopes    []string
	scoper    Scoper
	transport http.RoundTripper
}

func New(aBroker *broker.Broker, options ...Option) (*RoundTripper, error) {
	if aBroker == nil {
		return nil, fmt.Errorf("broker was nil")
	}
	ret := &RoundTripper{
		broker:    aBroker,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// 1) First, send the request un-authenticated.
	probe := clone(req)
	resp, err := r.transport.RoundTrip(probe)
	if err != nil {
		return nil, err
	}

	// 2) If it wasn't a 401, just return it.
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// 3) Resolve the scopes the request needs; without any the challenge is
	// handed back to the caller untouched.
	scopes := r.requestScopes(req, resp)
	if len(scopes) == 0 {
		return resp, nil
	}
	// Close the prior body so we don't leak.
	resp.Body.Close()

	tok, err := r.broker.GetToken(req.Context(), scopes)
	if err != nil {
		return nil, err
	}

	// 4) Replay the request with the Bearer header.
	retry := clone(req)
	retry.Header.Set("Authorization", "Bearer "+tok.AccessToken())
	return r.transport.RoundTrip(retry)
}

// requestScopes resolves the scopes needed to authorize a challenged request:
// the per request scoper first, then statically configured scopes, then
// whatever the server advertised in its WWW-Authenticate challenge.
func (r *RoundTripper) requestScopes(req *http.Request, resp *http.Response) []string {
	if r.scoper != nil {
		if scopes := r.scoper.Scopes(req); len(scopes) > 0 {
			return scopes
		}
	}
	if len(r.scopes) > 0 {
		return r.scopes
	}
	return parseChallengeScopes(resp)
}
