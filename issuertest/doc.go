// Package issuertest provides an in-process token issuer that facilitates
// unit testing of the broker and its channels.
//
// Tests can exercise the full fetch path without network round-trips, swap
// the token handler to simulate failures, and assert per scope-set fetch
// counts.
package issuertest
