package transport

import "net/http"

type Option func(*RoundTripper)

// WithScopes sets the static scopes requested after a challenge.
func WithScopes(scopes ...string) Option {
	return func(r *RoundTripper) {
		r.scopes = scopes
	}
}

// WithScoper sets a per request scope resolver, taking precedence over the
// static scopes.
func WithScoper(scoper Scoper) Option {
	return func(r *RoundTripper) {
		r.scoper = scoper
	}
}

// WithTransport overrides the underlying round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(r *RoundTripper) {
		if transport != nil {
			r.transport = transport
		}
	}
}
