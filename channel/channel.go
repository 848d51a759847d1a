package channel

import "context"

// Response is the issuer's reply to a logical request: a status code and an
// ordered collection of opaque payloads. The broker consumes the first
// payload; the rest are preserved for callers with channel specific needs.
type Response struct {
	StatusCode int
	Payload    [][]byte
}

// First returns the first payload, or nil when the response carries none.
func (r *Response) First() []byte {
	if r == nil || len(r.Payload) == 0 {
		return nil
	}
	return r.Payload[0]
}

// Channel delivers logical requests to the token issuer. Implementations
// decide how an address maps onto their transport; see the http, rpc and
// nats subpackages.
type Channel interface {
	Get(ctx context.Context, address string) (*Response, error)
}

// Func adapts an ordinary function to the Channel interface.
type Func func(ctx context.Context, address string) (*Response, error)

func (f Func) Get(ctx context.Context, address string) (*Response, error) {
	return f(ctx, address)
}
