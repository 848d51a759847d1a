package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/viant/keymaster/channel"
)

// Responder serves issuer responses over a NATS subject. Each request message
// carries a logical token request address, the reply is a JSON envelope.
type Responder struct {
	channel channel.Channel
	logger  *logrus.Logger
}

// NewResponder creates a responder resolving addresses through ch.
func NewResponder(ch channel.Channel) *Responder {
	return &Responder{channel: ch, logger: logrus.StandardLogger()}
}

// Reply resolves an address and encodes the envelope reply.
func (r *Responder) Reply(ctx context.Context, address string) ([]byte, error) {
	response, err := r.channel.Get(ctx, address)
	if err != nil {
		return nil, err
	}
	return json.Marshal(channel.NewEnvelope(response))
}

// Subscribe binds the responder to a subject on conn.
func (r *Responder) Subscribe(conn *nats.Conn, subject string) (*nats.Subscription, error) {
	return conn.Subscribe(subject, func(msg *nats.Msg) {
		data, err := r.Reply(context.Background(), string(msg.Data))
		if err != nil {
			r.logger.WithError(err).Warn("failed to resolve token request")
			return
		}
		if err := msg.Respond(data); err != nil {
			r.logger.WithError(err).Warn("failed to publish reply")
		}
	})
}
