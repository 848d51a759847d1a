package issuertest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/viant/keymaster/internal/scopeset"
)

// Service is an in-process token issuer. The token handler can be swapped to
// simulate failures; the default mints RS256 signed bearer tokens covering
// the requested scopes, or the configured grant when one is pinned.
type Service struct {
	PrivateKey *rsa.PrivateKey
	// ClientID, when set, rejects requests from any other client.
	ClientID string
	// GrantedScopes, when set, is minted into every token regardless of the
	// requested scopes.
	GrantedScopes []string
	TTL           time.Duration
	Subject       string
	TokenHandler  func(w http.ResponseWriter, r *http.Request)

	mu      sync.Mutex
	fetches map[string]int
}

// NewService creates a token issuer, generating an RSA signing key unless one
// was supplied.
func NewService(options ...Option) (*Service, error) {
	ret := &Service{
		TTL:     time.Hour,
		Subject: "test_subject",
		fetches: map[string]int{},
	}
	for _, option := range options {
		option(ret)
	}
	if ret.PrivateKey == nil {
		privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("failed to generate RSA key: %v", err)
		}
		ret.PrivateKey = privateKey
	}
	return ret, nil
}

// Router returns the issuer endpoints on a gorilla router.
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/token/authenticated", func(w http.ResponseWriter, r *http.Request) {
		if s.TokenHandler != nil {
			s.TokenHandler(w, r)
			return
		}
		s.defaultTokenHandler(w, r)
	}).Methods(http.MethodGet)
	return router
}

// Handler returns an http.Handler serving the issuer endpoints.
func (s *Service) Handler() http.Handler {
	return s.Router()
}

// defaultTokenHandler handles /token/authenticated requests
func (s *Service) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rawScope := query.Get("scope")
	clientID := query.Get("client_id")
	deviceID := query.Get("device_id")
	if rawScope == "" || clientID == "" || deviceID == "" {
		http.Error(w, "missing scope, client_id or device_id", http.StatusBadRequest)
		return
	}
	if s.ClientID != "" && clientID != s.ClientID {
		http.Error(w, "unknown client", http.StatusForbidden)
		return
	}
	scopes := strings.Split(rawScope, ",")
	s.recordFetch(scopes)
	granted := scopes
	if len(s.GrantedScopes) > 0 {
		granted = s.GrantedScopes
	}
	accessToken, err := s.createJWT(clientID, granted)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	response := map[string]interface{}{
		"expiresIn":   int(s.TTL / time.Second),
		"accessToken": accessToken,
		"scope":       granted,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func (s *Service) recordFetch(scopes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches[scopeset.Key(scopes)]++
}

// FetchCount reports how many tokens were minted for the given scope set,
// regardless of scope ordering.
func (s *Service) FetchCount(scopes ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[scopeset.Key(scopes)]
}

// TotalFetches reports how many tokens were minted overall.
func (s *Service) TotalFetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, count := range s.fetches {
		total += count
	}
	return total
}
