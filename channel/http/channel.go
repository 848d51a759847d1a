package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs/url"
	"github.com/viant/scy"

	"github.com/viant/keymaster/channel"
)

// Channel reaches the token issuer over HTTP. A logical address is joined
// onto the configured base URL and issued as a GET; the body, when present,
// becomes the single response payload.
type Channel struct {
	baseURL         string
	client          *http.Client
	logger          logrus.FieldLogger
	credentialsPath string
	secretResource  *scy.Resource
	watcher         *watcher

	mu     sync.RWMutex
	bearer string
}

// New returns an HTTP channel rooted at baseURL.
func New(baseURL string, options ...Option) (*Channel, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL was empty")
	}
	ret := &Channel{
		baseURL: baseURL,
		client:  http.DefaultClient,
		logger:  logrus.StandardLogger(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.secretResource != nil {
		secret, err := scy.New().Load(context.Background(), ret.secretResource)
		if err != nil {
			return nil, fmt.Errorf("failed to load session credential: %w", err)
		}
		ret.setBearer(strings.TrimSpace(secret.String()))
	}
	if ret.credentialsPath != "" {
		if err := ret.loadCredential(ret.credentialsPath); err != nil {
			return nil, fmt.Errorf("failed to load session credential: %w", err)
		}
		aWatcher, err := watchCredential(ret, ret.credentialsPath)
		if err != nil {
			return nil, err
		}
		ret.watcher = aWatcher
	}
	return ret, nil
}

// Get issues the logical address as a GET request against the base URL.
func (c *Channel) Get(ctx context.Context, address string) (*channel.Response, error) {
	path, query, _ := strings.Cut(address, "?")
	URL := url.Join(c.baseURL, path)
	if query != "" {
		URL += "?" + query
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, err
	}
	if bearer := c.sessionBearer(); bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	ret := &channel.Response{StatusCode: response.StatusCode}
	if len(data) > 0 {
		ret.Payload = [][]byte{data}
	}
	return ret, nil
}

// Close stops the credential watcher when one was configured.
func (c *Channel) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.close()
}

func (c *Channel) sessionBearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

func (c *Channel) setBearer(bearer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = bearer
}
