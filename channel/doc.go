// Package channel defines the transport abstraction between the token broker
// and its issuer. A channel resolves a logical address into a response with a
// status code and opaque payloads; the broker never sees the underlying
// protocol. Concrete transports live in the http, rpc and nats subpackages.
package channel
