package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/keymaster/channel"
	"github.com/viant/keymaster/token"
)

func issue(expiresIn int64, accessToken string, scopes []string) *channel.Response {
	body, _ := json.Marshal(struct {
		ExpiresIn   int64    `json:"expiresIn"`
		AccessToken string   `json:"accessToken"`
		Scope       []string `json:"scope"`
	}{expiresIn, accessToken, scopes})
	return &channel.Response{StatusCode: http.StatusOK, Payload: [][]byte{body}}
}

// echoIssuer grants exactly the requested scopes and numbers access tokens by
// fetch order.
func echoIssuer(calls *int32) channel.Func {
	return func(ctx context.Context, address string) (*channel.Response, error) {
		n := atomic.AddInt32(calls, 1)
		_, query, err := channel.SplitAddress(address)
		if err != nil {
			return nil, err
		}
		granted := strings.Split(query.Get("scope"), ",")
		return issue(3600, fmt.Sprintf("token-%v", n), granted), nil
	}
}

func TestNewDefaults(t *testing.T) {
	b := New(channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		return nil, nil
	}))
	assert.Equal(t, DefaultClientID, b.ClientID())
	_, err := uuid.Parse(b.DeviceID())
	assert.NoError(t, err)
}

func TestGetTokenEmptyScopes(t *testing.T) {
	var calls int32
	b := New(echoIssuer(&calls))
	_, err := b.GetToken(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyScope)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGetTokenCachesByScopeCoverage(t *testing.T) {
	var calls int32
	b := New(echoIssuer(&calls))
	ctx := context.Background()

	first, err := b.GetToken(ctx, []string{"user-read-email", "streaming"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", first.AccessToken())

	// subset and reordered requests are served from the cache
	cached, err := b.GetToken(ctx, []string{"streaming"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", cached.AccessToken())

	cached, err = b.GetToken(ctx, []string{"streaming", "user-read-email"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", cached.AccessToken())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	other, err := b.GetToken(ctx, []string{"offline"})
	require.NoError(t, err)
	assert.Equal(t, "token-2", other.AccessToken())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetTokenEvictsExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var calls int32
	b := New(echoIssuer(&calls), WithClock(clock))
	ctx := context.Background()

	first, err := b.GetToken(ctx, []string{"streaming"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", first.AccessToken())

	clock.Advance(3600*time.Second - token.ExpiryThreshold - time.Second)
	cached, err := b.GetToken(ctx, []string{"streaming"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", cached.AccessToken())

	clock.Advance(2 * time.Second)
	refreshed, err := b.GetToken(ctx, []string{"streaming"})
	require.NoError(t, err)
	assert.Equal(t, "token-2", refreshed.AccessToken())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, b.cache.len())
}

func TestGetTokenFirstMatchWins(t *testing.T) {
	var calls int32
	b := New(echoIssuer(&calls))
	ctx := context.Background()

	_, err := b.GetToken(ctx, []string{"a"})
	require.NoError(t, err)
	_, err = b.GetToken(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, 2, b.cache.len())

	// both cached tokens cover "a"; the earlier insertion is returned
	hit, err := b.GetToken(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", hit.AccessToken())
}

func TestGetTokenCoversBroaderGrant(t *testing.T) {
	var calls int32
	ch := channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		atomic.AddInt32(&calls, 1)
		// the issuer may grant more than was asked for
		return issue(3600, "token-1", []string{"streaming", "playlist-read"}), nil
	})
	b := New(ch)
	ctx := context.Background()

	_, err := b.GetToken(ctx, []string{"streaming"})
	require.NoError(t, err)

	cached, err := b.GetToken(ctx, []string{"playlist-read"})
	require.NoError(t, err)
	assert.Equal(t, "token-1", cached.AccessToken())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetTokenChannelErrorPassesThrough(t *testing.T) {
	transportErr := errors.New("connection reset")
	b := New(channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		return nil, transportErr
	}))
	_, err := b.GetToken(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, 0, b.cache.len())
}

func TestGetTokenNonSuccessStatus(t *testing.T) {
	b := New(channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		return &channel.Response{StatusCode: http.StatusServiceUnavailable}, nil
	}))
	_, err := b.GetToken(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "503")
}

func TestGetTokenEmptyPayload(t *testing.T) {
	b := New(channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		return &channel.Response{StatusCode: http.StatusOK}, nil
	}))
	_, err := b.GetToken(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetTokenMalformedPayload(t *testing.T) {
	b := New(channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		return &channel.Response{StatusCode: http.StatusOK, Payload: [][]byte{[]byte("no token for you")}}, nil
	}))
	_, err := b.GetToken(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
	var parseErr *token.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 0, b.cache.len())
}

func TestGetTokenDuplicateConcurrentFetches(t *testing.T) {
	var calls int32
	var inflight sync.WaitGroup
	inflight.Add(2)
	ch := channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		n := atomic.AddInt32(&calls, 1)
		// hold both fetches open so neither can serve the other from cache
		inflight.Done()
		inflight.Wait()
		return issue(3600, fmt.Sprintf("token-%v", n), []string{"a"}), nil
	})
	b := New(ch)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.GetToken(context.Background(), []string{"a"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, b.cache.len())
}

func TestGetTokenSingleFlight(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	ch := channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return issue(3600, "token-1", []string{"a"}), nil
	})
	b := New(ch, WithSingleFlight())

	results := make(chan string, 2)
	go func() {
		issued, err := b.GetToken(context.Background(), []string{"a"})
		assert.NoError(t, err)
		results <- issued.AccessToken()
	}()
	<-started
	go func() {
		// joins the in-flight fetch, or hits the cache if it already landed
		issued, err := b.GetToken(context.Background(), []string{"a"})
		assert.NoError(t, err)
		results <- issued.AccessToken()
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	assert.Equal(t, "token-1", <-results)
	assert.Equal(t, "token-1", <-results)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetTokenAddress(t *testing.T) {
	var seen string
	b := New(channel.Func(func(ctx context.Context, address string) (*channel.Response, error) {
		seen = address
		return issue(3600, "token-1", []string{"s1", "s2"}), nil
	}), WithClientID("client-x"), WithDeviceID("device-y"))

	_, err := b.GetToken(context.Background(), []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, "token/authenticated?scope=s1,s2&client_id=client-x&device_id=device-y", seen)
}

func TestTokenSource(t *testing.T) {
	var calls int32
	b := New(echoIssuer(&calls))
	source := b.TokenSource(context.Background(), "streaming")

	issued, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "token-1", issued.AccessToken)
	assert.Equal(t, "Bearer", issued.TokenType)

	again, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "token-1", again.AccessToken)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
