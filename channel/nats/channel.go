package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/viant/keymaster/channel"
)

const (
	reconnectWait = 2 * time.Second
	maxReconnects = 5
)

// Channel reaches the token issuer over NATS request reply. The logical
// address travels as the request payload and the reply is decoded as a JSON
// envelope.
type Channel struct {
	conn    *nats.Conn
	subject string
	owned   bool
}

// New returns a channel asking for tokens on the given subject over an
// established connection.
func New(conn *nats.Conn, subject string) (*Channel, error) {
	if conn == nil {
		return nil, fmt.Errorf("conn was nil")
	}
	if subject == "" {
		return nil, fmt.Errorf("subject was empty")
	}
	return &Channel{conn: conn, subject: subject}, nil
}

// Dial connects to the NATS server at URL and returns a channel owning the
// connection; Close releases it.
func Dial(URL, subject string, options ...nats.Option) (*Channel, error) {
	if URL == "" {
		URL = nats.DefaultURL
	}
	opts := append([]nats.Option{
		nats.Name("keymaster"),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logrus.WithError(err).Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logrus.WithField("url", nc.ConnectedUrl()).Info("nats reconnected")
		}),
	}, options...)
	conn, err := nats.Connect(URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	ret, err := New(conn, subject)
	if err != nil {
		conn.Close()
		return nil, err
	}
	ret.owned = true
	return ret, nil
}

// Get sends the logical address on the subject and waits for the issuer's
// reply.
func (c *Channel) Get(ctx context.Context, address string) (*channel.Response, error) {
	message, err := c.conn.RequestWithContext(ctx, c.subject, []byte(address))
	if err != nil {
		return nil, err
	}
	return decodeReply(message.Data)
}

// Close releases the connection when this channel owns it.
func (c *Channel) Close() error {
	if c.owned {
		c.conn.Close()
	}
	return nil
}

func decodeReply(data []byte) (*channel.Response, error) {
	envelope := &channel.Envelope{}
	if err := json.Unmarshal(data, envelope); err != nil {
		return nil, fmt.Errorf("malformed reply envelope: %w", err)
	}
	return envelope.Response(), nil
}
