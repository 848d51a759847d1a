package rpc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"

	"github.com/viant/keymaster/channel"
)

// request is the parameter object sent to the issuer's rpc method.
type request struct {
	Scope    string `json:"scope"`
	ClientID string `json:"clientId"`
	DeviceID string `json:"deviceId"`
}

// Channel reaches the token issuer over a jsonrpc transport. The logical
// address path becomes the rpc method and its query the parameter object.
type Channel struct {
	transport transport.Transport
}

// New returns a channel sending issuer requests over the supplied transport.
func New(aTransport transport.Transport) *Channel {
	return &Channel{transport: aTransport}
}

// Get sends the logical address as a jsonrpc request. A successful result is
// returned as the single response payload; an rpc error maps onto a non
// success status.
func (c *Channel) Get(ctx context.Context, address string) (*channel.Response, error) {
	path, query, err := channel.SplitAddress(address)
	if err != nil {
		return nil, err
	}
	req, err := jsonrpc.NewRequest(path, &request{
		Scope:    query.Get("scope"),
		ClientID: query.Get("client_id"),
		DeviceID: query.Get("device_id"),
	})
	if err != nil {
		return nil, err
	}
	response, err := c.transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return errorResponse(response.Error), nil
	}
	ret := &channel.Response{StatusCode: http.StatusOK}
	if len(response.Result) > 0 {
		ret.Payload = [][]byte{response.Result}
	}
	return ret, nil
}

// errorResponse maps an rpc error onto a response status. An issuer side
// error carries the original status in its data envelope; anything else is
// treated as an internal failure.
func errorResponse(rpcErr *jsonrpc.Error) *channel.Response {
	data, _ := json.Marshal(rpcErr.Data)
	if len(data) > 0 {
		envelope := &channel.Envelope{}
		if err := json.Unmarshal(data, envelope); err == nil && envelope.Status != 0 {
			return envelope.Response()
		}
	}
	return &channel.Response{StatusCode: http.StatusInternalServerError}
}
