package issuertest

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// createJWT creates a signed access token for clientID carrying the granted scopes
func (s *Service) createJWT(clientID string, scopes []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   "keymaster-test",
		"sub":   s.Subject,
		"aud":   clientID,
		"scope": strings.Join(scopes, " "),
		"exp":   now.Add(s.TTL).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.PrivateKey)
}
