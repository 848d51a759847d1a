package issuertest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/viant/keymaster/channel"
)

// HTTPTestServer binds the service to a test HTTP server.
type HTTPTestServer struct {
	*Service
	Server *httptest.Server
}

func NewHTTPTestServer(options ...Option) (*HTTPTestServer, error) {
	service, err := NewService(options...)
	if err != nil {
		return nil, err
	}
	return &HTTPTestServer{
		Service: service,
		Server:  httptest.NewServer(service.Handler()),
	}, nil
}

// URL returns the issuer base URL.
func (s *HTTPTestServer) URL() string {
	return s.Server.URL
}

func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}

// Respond serves a logical address straight through the issuer handler
// without sockets. It matches the channel.Func signature and also suits
// custom responders bridging the issuer onto other transports.
func (s *Service) Respond(ctx context.Context, address string) (*channel.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, "/"+address, nil)
	if err != nil {
		return nil, err
	}
	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, request)
	result := recorder.Result()
	defer func() { _ = result.Body.Close() }()
	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}
	ret := &channel.Response{StatusCode: result.StatusCode}
	if len(data) > 0 {
		ret.Payload = [][]byte{data}
	}
	return ret, nil
}

// Channel returns an in-process issuer channel backed by Respond.
func (s *Service) Channel() channel.Channel {
	return channel.Func(s.Respond)
}
