// Package example contains self-contained snippets and integration tests that
// demonstrate how to use the token broker and its issuer channels.
//
// The code under the sub-directories can be executed with `go test` and covers
// scenarios such as transparent HTTP authorization and serving an issuer over
// a NATS subject.
package example
