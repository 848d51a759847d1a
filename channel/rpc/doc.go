// Package rpc implements the issuer channel over any jsonrpc transport,
// letting the broker fetch tokens across stdio, streaming HTTP or in-process
// endpoints without knowing the difference.
package rpc
