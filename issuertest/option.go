package issuertest

import (
	"crypto/rsa"
	"time"
)

type Option func(*Service)

// WithClientID pins the accepted client identifier; other clients get a 403.
func WithClientID(clientID string) Option {
	return func(s *Service) {
		s.ClientID = clientID
	}
}

// WithPrivateKey signs minted tokens with the supplied key instead of a
// generated one.
func WithPrivateKey(privateKey *rsa.PrivateKey) Option {
	return func(s *Service) {
		if privateKey != nil {
			s.PrivateKey = privateKey
		}
	}
}

// WithGrantedScopes pins the scopes minted into every token, letting tests
// issue grants broader than the request.
func WithGrantedScopes(scopes ...string) Option {
	return func(s *Service) {
		s.GrantedScopes = scopes
	}
}

// WithTTL sets the granted token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.TTL = ttl
		}
	}
}

// WithSubject sets the sub claim of minted tokens.
func WithSubject(subject string) Option {
	return func(s *Service) {
		s.Subject = subject
	}
}
