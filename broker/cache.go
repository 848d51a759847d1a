package broker

import (
	"sync"

	"github.com/viant/keymaster/token"
)

// cache holds previously issued tokens in insertion order. Each method takes
// the guard only for its own duration, so a slow issuer fetch never blocks
// concurrent lookups.
type cache struct {
	mu     sync.Mutex
	tokens []token.Token
}

// findIndex returns the index of the first cached token whose granted scopes
// cover all requested ones.
func (c *cache) findIndex(scopes []string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for index, candidate := range c.tokens {
		if candidate.Covers(scopes) {
			return index, true
		}
	}
	return -1, false
}

func (c *cache) get(index int) (token.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[index], true
}

// removeAt drops the token at index. The bounds are revalidated under the
// guard since the cache may have changed since the lookup that produced the
// index.
func (c *cache) removeAt(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.tokens) {
		return
	}
	c.tokens = append(c.tokens[:index], c.tokens[index+1:]...)
}

func (c *cache) push(t token.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = append(c.tokens, t)
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tokens)
}
