package example

import (
	"context"

	"github.com/viant/keymaster/broker"
	"github.com/viant/keymaster/channel"
)

// MyChannel implements the issuer channel contract.
// Wrap an existing channel for common behavior.
type MyChannel struct {
	// Add your custom fields here
}

// Get exchanges a logical token request address for an issuer response.
func (c *MyChannel) Get(ctx context.Context, address string) (*channel.Response, error) {
	// Implement the exchange with your issuer
	return &channel.Response{StatusCode: 200}, nil
}

// New returns a token broker backed by MyChannel.
func New(options ...broker.Option) *broker.Broker {
	return broker.New(&MyChannel{}, options...)
}
