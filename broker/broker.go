package broker

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/viant/keymaster/channel"
	"github.com/viant/keymaster/internal/scopeset"
	"github.com/viant/keymaster/token"
)

// DefaultClientID identifies this library to the issuer when the broker owner
// does not supply its own registration.
const DefaultClientID = "65b708073fc0480ea92a077233ca87bd"

var (
	// ErrEmptyScope is returned when a token is requested with no scopes.
	ErrEmptyScope = errors.New("no scopes requested")
	// ErrRequestFailed is returned when the issuer replies with a non success
	// status.
	ErrRequestFailed = errors.New("token request failed")
	// ErrInvalidResponse is returned when a successful issuer reply carries no
	// usable token payload.
	ErrInvalidResponse = errors.New("no tokens available")
)

// Broker acquires scoped bearer tokens over an issuer channel and caches them
// until they approach expiry.
type Broker struct {
	channel  channel.Channel
	cache    cache
	clientID string
	deviceID string
	clock    clockwork.Clock
	logger   logrus.FieldLogger
	single   bool
	group    singleflight.Group
}

// New returns a broker fetching tokens over the supplied channel.
func New(ch channel.Channel, options ...Option) *Broker {
	ret := &Broker{
		channel:  ch,
		clientID: DefaultClientID,
		deviceID: uuid.NewString(),
		clock:    clockwork.NewRealClock(),
		logger:   logrus.StandardLogger(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// ClientID returns the client identifier presented to the issuer.
func (b *Broker) ClientID() string {
	return b.clientID
}

// DeviceID returns the device identifier presented to the issuer.
func (b *Broker) DeviceID() string {
	return b.deviceID
}

// GetToken returns a token whose granted scopes cover every requested scope.
// A cached token is reused while it stays clear of the expiry margin; an
// expired hit is evicted and a fresh token is fetched from the issuer and
// cached. Fetch failures surface directly, there are no retries at this
// layer.
func (b *Broker) GetToken(ctx context.Context, scopes []string) (token.Token, error) {
	if len(scopes) == 0 {
		return token.Token{}, ErrEmptyScope
	}
	if index, ok := b.cache.findIndex(scopes); ok {
		if cached, ok := b.cache.get(index); ok {
			if !cached.IsExpired() {
				return cached, nil
			}
			b.cache.removeAt(index)
		}
	}
	b.logger.WithField("scopes", scopes).Debug("token unavailable or expired, requesting new token")
	if !b.single {
		return b.fetch(ctx, scopes)
	}
	result, err, _ := b.group.Do(scopeset.Key(scopes), func() (interface{}, error) {
		return b.fetch(ctx, scopes)
	})
	if err != nil {
		return token.Token{}, err
	}
	return result.(token.Token), nil
}

func (b *Broker) fetch(ctx context.Context, scopes []string) (token.Token, error) {
	address := channel.TokenAddress(scopes, b.clientID, b.deviceID)
	response, err := b.channel.Get(ctx, address)
	if err != nil {
		return token.Token{}, err
	}
	if response == nil || response.StatusCode != http.StatusOK {
		status := 0
		if response != nil {
			status = response.StatusCode
		}
		return token.Token{}, fmt.Errorf("%w: status %v", ErrRequestFailed, status)
	}
	data := response.First()
	if len(data) == 0 {
		return token.Token{}, ErrInvalidResponse
	}
	issued, err := token.Parse(data, token.WithClock(b.clock))
	if err != nil {
		return token.Token{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	b.logger.WithFields(logrus.Fields{
		"scopes":   issued.Scopes(),
		"lifetime": issued.Lifetime(),
	}).Debug("got token")
	b.cache.push(issued)
	return issued, nil
}

// TokenSource adapts the broker to the oauth2 token source contract for the
// given scopes.
func (b *Broker) TokenSource(ctx context.Context, scopes ...string) oauth2.TokenSource {
	return &tokenSource{broker: b, ctx: ctx, scopes: scopes}
}

type tokenSource struct {
	broker *Broker
	ctx    context.Context
	scopes []string
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	issued, err := s.broker.GetToken(s.ctx, s.scopes)
	if err != nil {
		return nil, err
	}
	return issued.OAuth2(), nil
}
