package credstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
)

// MemoryStore implements Store using an in-process key/value map. It keeps
// the same two-key layout as the durable backends so partial pairs and
// corrupt records behave identically. Intended for tests.
type MemoryStore struct {
	mu        sync.RWMutex
	values    map[string]string
	namespace string
}

// NewMemoryStore creates a new in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:    make(map[string]string),
		namespace: "authkit",
	}
}

func (s *MemoryStore) tokenKey() string { return s.namespace + ":token" }
func (s *MemoryStore) userKey() string  { return s.namespace + ":user" }

// Save writes both keys.
func (s *MemoryStore) Save(ctx context.Context, creds Credentials) error {
	if creds.Token == "" {
		return ErrEmptyToken
	}

	userJSON, err := json.Marshal(creds.User)
	if err != nil {
		return ErrStoreFailure
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.tokenKey()] = creds.Token
	s.values[s.userKey()] = string(userJSON)
	return nil
}

// Load returns the stored pair, or ErrNotFound when either key is missing or
// the user record does not decode.
func (s *MemoryStore) Load(ctx context.Context) (Credentials, error) {
	s.mu.RLock()
	token, hasToken := s.values[s.tokenKey()]
	userJSON, hasUser := s.values[s.userKey()]
	s.mu.RUnlock()

	if !hasToken || !hasUser || token == "" {
		return Credentials{}, ErrNotFound
	}

	var user apiclient.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return Credentials{}, ErrNotFound
	}

	return Credentials{Token: token, User: user}, nil
}

// Clear removes both keys.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.tokenKey())
	delete(s.values, s.userKey())
	return nil
}

// SetRaw writes a single raw key, bypassing Save's pairing. It exists so
// tests can stage partial or corrupt states.
func (s *MemoryStore) SetRaw(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.namespace+":"+key] = value
}

// DeleteRaw removes a single raw key.
func (s *MemoryStore) DeleteRaw(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.namespace+":"+key)
}
