// Package broker implements client side acquisition and caching of scoped
// bearer tokens. A broker asks its issuer channel for a token on demand,
// reuses any cached token whose granted scopes cover the request, and evicts
// tokens lazily once they come within the expiry safety margin.
package broker
