// Package store is the client's durable local storage. Each key is one
// JSON file under the storage directory, read at startup and written
// synchronously after each mutating operation; a corrupt or unreadable
// file is treated as an absent value, never a startup error.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"

	"github.com/pkg/errors"
)

// Storage keys.
const (
	keyToken           = "token"
	keyUser            = "user"
	keyCustomerAddress = "customerAddress"
	keyRatedGroups     = "ratedGroups"
)

// RatedGroups maps a stringified group id to the rating id the customer
// submitted for it. Presence of a key is the only client-side signal
// that a group was already rated; entries are never removed.
type RatedGroups map[string]int

// Store persists the client's session state between runs.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New opens (creating if needed) the storage directory.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create storage directory")
	}

	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read unmarshals the value for key into out. Returns false when the
// key is absent or its content does not parse.
func (s *Store) read(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}

	return true
}

// write marshals value and persists it for key.
func (s *Store) write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), raw, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}

	return nil
}

// remove deletes the value for key. Missing keys are not an error.
func (s *Store) remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", key)
	}

	return nil
}

// Token returns the stored access token, or "" when absent.
func (s *Store) Token() string {
	var token string
	if !s.read(keyToken, &token) {
		return ""
	}

	return token
}

// SetToken persists the access token.
func (s *Store) SetToken(token string) error {
	return s.write(keyToken, token)
}

// User returns the cached user record, or nil when absent or corrupt.
func (s *Store) User() *entity.User {
	var user entity.User
	if !s.read(keyUser, &user) {
		return nil
	}

	return &user
}

// SetUser persists the cached user record.
func (s *Store) SetUser(user *entity.User) error {
	return s.write(keyUser, user)
}

// CustomerAddress returns the locally stored customer address, or nil.
func (s *Store) CustomerAddress() *entity.CustomerAddress {
	var addr entity.CustomerAddress
	if !s.read(keyCustomerAddress, &addr) {
		return nil
	}

	return &addr
}

// SetCustomerAddress persists the customer address.
func (s *Store) SetCustomerAddress(addr *entity.CustomerAddress) error {
	return s.write(keyCustomerAddress, addr)
}

// RatedGroups returns the rated-groups cache. Absent or corrupt content
// yields an empty, usable map.
func (s *Store) RatedGroups() RatedGroups {
	rated := RatedGroups{}
	s.read(keyRatedGroups, &rated)
	if rated == nil {
		rated = RatedGroups{}
	}

	return rated
}

// SetRatedGroups persists the rated-groups cache.
func (s *Store) SetRatedGroups(rated RatedGroups) error {
	return s.write(keyRatedGroups, rated)
}

// ClearSession removes the token and cached user, returning the client
// to the anonymous state. The rated-groups cache and customer address
// survive logout.
func (s *Store) ClearSession() error {
	if err := s.remove(keyToken); err != nil {
		return err
	}

	return s.remove(keyUser)
}
