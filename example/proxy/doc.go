// Package proxy demonstrates transparent HTTP authorization. It starts a mock
// token issuer and an API server that protects a resource with a bearer
// challenge. The client reaches the resource through a RoundTripper that
// fetches and attaches tokens on demand.
package proxy
