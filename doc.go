// Package keymaster provides high-level helpers for acquiring scoped bearer
// tokens from a token issuer.
//
// The package glues the broker's caching core with concrete issuer channels
// and convenience configuration structures.  In practice it is used as an
// umbrella package whose primary entry-point, New, returns a fully configured
// token broker over an HTTP, jsonrpc or NATS issuer channel.
//
// The constructor accepts an option structure that can be populated from CLI
// flags or configuration files, making it straightforward to stand up a
// broker whose session credential comes from a flag, a hot-reloaded file or
// an encrypted scy secret.
//
// Example:
//
//	b, _ := keymaster.New(&keymaster.Options{
//		Channel: keymaster.ChannelOptions{Type: "http", ChannelHTTP: keymaster.ChannelHTTP{URL: issuerURL}},
//	})
//	token, _ := b.GetToken(ctx, []string{"streaming"})
//
// See the README for a more complete introduction.
package keymaster
