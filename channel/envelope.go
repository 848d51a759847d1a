package channel

// Envelope is the JSON reply framing shared by channels without HTTP status
// semantics, such as rpc and nats. Payload elements travel base64 encoded.
type Envelope struct {
	Status  int      `json:"status"`
	Payload [][]byte `json:"payload,omitempty"`
}

// Response converts the envelope into a channel response.
func (e *Envelope) Response() *Response {
	return &Response{StatusCode: e.Status, Payload: e.Payload}
}

// NewEnvelope frames a response for transports replying with JSON envelopes.
func NewEnvelope(response *Response) *Envelope {
	if response == nil {
		return &Envelope{}
	}
	return &Envelope{Status: response.StatusCode, Payload: response.Payload}
}
