// Package token defines the scoped bearer token value exchanged with the
// issuer and the expiry and scope-coverage rules applied to it locally.
//
// Tokens are immutable: Parse constructs one from the issuer wire payload and
// stamps its issue time; IsExpired and Covers are pure reads. Expiry applies
// a fixed safety margin (ExpiryThreshold) so a token is retired before it can
// lapse mid-request.
package token
