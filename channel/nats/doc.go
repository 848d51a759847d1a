// Package nats implements the issuer channel over NATS request reply,
// suitable for deployments where token issuance rides an existing messaging
// fabric rather than a direct HTTP endpoint.
package nats
