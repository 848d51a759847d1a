package token

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"golang.org/x/oauth2"
)

// ExpiryThreshold is the safety margin subtracted from a token's claimed
// lifetime before it is considered expired locally. A token within the margin
// could expire mid-flight to the resource server, so it is treated as already
// unusable; a lifetime shorter than the margin expires immediately.
const ExpiryThreshold = 10 * time.Second

// Token is a scoped bearer credential minted by the issuer. A Token is
// immutable once constructed: Parse stamps the issue time and every later
// check derives from that stamp and the claimed lifetime.
type Token struct {
	accessToken string
	scopes      []string
	issuedAt    time.Time
	lifetime    time.Duration
	clock       clockwork.Clock
}

// claims sits between the issuer wire payload and the Token value. Pointer
// fields distinguish absent from zero-valued fields so a payload missing a
// required field fails instead of yielding a default.
type claims struct {
	ExpiresIn   *int64    `json:"expiresIn"`
	AccessToken *string   `json:"accessToken"`
	Scope       *[]string `json:"scope"`
}

// ParseError reports an issuer payload that could not be decoded into a Token.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed token payload: %v: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed token payload: %v", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Option customizes Token construction.
type Option func(t *Token)

// WithClock sets the clock used to stamp the issue time and to evaluate
// expiry. The default is the system clock; tests inject a fake one.
func WithClock(clock clockwork.Clock) Option {
	return func(t *Token) {
		t.clock = clock
	}
}

// Parse decodes an issuer payload of the form
//
//	{"expiresIn": 3600, "accessToken": "...", "scope": ["streaming", ...]}
//
// into a Token, stamping the issue time with the configured clock. All three
// fields are required; a payload that is not valid UTF-8, not well-formed
// JSON, or missing any of them yields a *ParseError.
func Parse(data []byte, options ...Option) (Token, error) {
	ret := Token{clock: clockwork.NewRealClock()}
	for _, option := range options {
		option(&ret)
	}
	if !utf8.Valid(data) {
		return Token{}, &ParseError{Reason: "payload is not valid UTF-8"}
	}
	var body claims
	if err := json.Unmarshal(data, &body); err != nil {
		return Token{}, &ParseError{Reason: "invalid JSON", Cause: err}
	}
	switch {
	case body.ExpiresIn == nil:
		return Token{}, &ParseError{Reason: "missing expiresIn"}
	case *body.ExpiresIn < 0:
		return Token{}, &ParseError{Reason: fmt.Sprintf("negative expiresIn %v", *body.ExpiresIn)}
	case body.AccessToken == nil:
		return Token{}, &ParseError{Reason: "missing accessToken"}
	case body.Scope == nil:
		return Token{}, &ParseError{Reason: "missing scope"}
	}
	ret.accessToken = *body.AccessToken
	ret.scopes = append([]string(nil), (*body.Scope)...)
	ret.lifetime = time.Duration(*body.ExpiresIn) * time.Second
	ret.issuedAt = ret.clock.Now()
	return ret, nil
}

// AccessToken returns the opaque credential presented to resource servers.
func (t Token) AccessToken() string {
	return t.accessToken
}

// Scopes returns a copy of the capability strings this token grants.
func (t Token) Scopes() []string {
	return append([]string(nil), t.scopes...)
}

// IssuedAt returns the construction timestamp.
func (t Token) IssuedAt() time.Time {
	return t.issuedAt
}

// Lifetime returns the validity duration claimed by the issuer.
func (t Token) Lifetime() time.Duration {
	return t.lifetime
}

// ExpiresAt returns the issuer-claimed expiry instant, without the local
// safety margin applied.
func (t Token) ExpiresAt() time.Time {
	return t.issuedAt.Add(t.lifetime)
}

// IsExpired reports whether the token has left its safe validity window,
// i.e. issuedAt + (lifetime - ExpiryThreshold) is no longer ahead of now.
// The check runs on the construction clock, which for the system clock
// carries a monotonic reading, so wall-clock adjustments cannot flip the
// result. The zero Token is expired.
func (t Token) IsExpired() bool {
	if t.clock == nil {
		return true
	}
	return !t.clock.Now().Before(t.issuedAt.Add(t.lifetime - ExpiryThreshold))
}

// InScope reports whether the token grants the given scope.
func (t Token) InScope(scope string) bool {
	for _, granted := range t.scopes {
		if granted == scope {
			return true
		}
	}
	return false
}

// Covers reports whether the token grants every requested scope; a token
// holding a superset satisfies any subset request.
func (t Token) Covers(scopes []string) bool {
	for _, scope := range scopes {
		if !t.InScope(scope) {
			return false
		}
	}
	return true
}

// OAuth2 bridges the token into the golang.org/x/oauth2 ecosystem. The
// reported expiry is the issuer-claimed one; oauth2 applies its own early
// expiry margin on top.
func (t Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: t.accessToken,
		TokenType:   "Bearer",
		Expiry:      t.ExpiresAt(),
	}
}
