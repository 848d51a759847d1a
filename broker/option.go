package broker

import (
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Option customises a broker.
type Option func(*Broker)

// WithClientID overrides the default client identifier sent to the issuer.
func WithClientID(clientID string) Option {
	return func(b *Broker) {
		if clientID != "" {
			b.clientID = clientID
		}
	}
}

// WithDeviceID sets the device identifier sent to the issuer, replacing the
// generated one.
func WithDeviceID(deviceID string) Option {
	return func(b *Broker) {
		if deviceID != "" {
			b.deviceID = deviceID
		}
	}
}

// WithClock injects the clock used for expiry decisions.
func WithClock(clock clockwork.Clock) Option {
	return func(b *Broker) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithLogger overrides the standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Broker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSingleFlight collapses concurrent fetches for the same scope set into a
// single issuer request. Without it concurrent callers may each fetch and
// each insert a token.
func WithSingleFlight() Option {
	return func(b *Broker) {
		b.single = true
	}
}
