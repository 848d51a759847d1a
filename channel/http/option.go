package http

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/scy"
)

type Option func(*Channel)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Channel) {
		if client != nil {
			c.client = client
		}
	}
}

// WithBearer sets a static session credential attached to every request.
func WithBearer(bearer string) Option {
	return func(c *Channel) {
		c.bearer = strings.TrimSpace(bearer)
	}
}

// WithCredentialsFile loads the session credential from a file and reloads it
// whenever the file changes.
func WithCredentialsFile(path string) Option {
	return func(c *Channel) {
		c.credentialsPath = path
	}
}

// WithSecrets loads the session credential from a scy secret resource, which
// may be encrypted with any registered kms scheme.
func WithSecrets(URL, key string) Option {
	return func(c *Channel) {
		c.secretResource = &scy.Resource{URL: URL, Key: key}
	}
}

// WithLogger overrides the standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Channel) {
		if logger != nil {
			c.logger = logger
		}
	}
}
