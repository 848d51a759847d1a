package cli

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/keymaster/issuertest"
)

func TestParseArgs(t *testing.T) {
	options := &Options{}
	_, err := flags.ParseArgs(options, []string{
		"-u", "https://issuer.example.com",
		"-s", "streaming", "-s", "user-read-email",
		"-c", "client1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://issuer.example.com", options.Channel.URL)
	assert.Equal(t, []string{"streaming", "user-read-email"}, options.Scopes)
	assert.Equal(t, "client1", options.ClientID)
	assert.Equal(t, 30, options.TimeoutSeconds)
}

func TestParseArgsRequiresScope(t *testing.T) {
	_, err := flags.ParseArgs(&Options{}, []string{"-u", "https://issuer.example.com"})
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KEYMASTER_URL", "https://issuer.example.com")
	t.Setenv("KEYMASTER_CLIENT_ID", "env-client")

	options := &Options{}
	options.applyEnv()
	assert.Equal(t, "https://issuer.example.com", options.Channel.URL)
	assert.Equal(t, "env-client", options.ClientID)

	options.Init()
	assert.Equal(t, "http", options.Channel.Type)
}

func TestRun(t *testing.T) {
	issuer, err := issuertest.NewHTTPTestServer()
	require.NoError(t, err)
	defer issuer.Close()

	err = Run([]string{"-u", issuer.URL(), "-s", "streaming"})
	require.NoError(t, err)
	assert.Equal(t, 1, issuer.FetchCount("streaming"))
}
