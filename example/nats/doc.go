// Package nats demonstrates serving a token issuer over a NATS subject. A
// responder subscribes to the subject, resolves each request address through
// an issuer channel and replies with the envelope the nats issuer channel
// understands.
package nats
