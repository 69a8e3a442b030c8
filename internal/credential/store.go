package credential

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCredentials is returned when construction yields zero usable
// credentials. A pool built on such a store could never serve a request.
var ErrNoCredentials = errors.New("no usable credentials")

// placeholder values that appear when a config template is copied verbatim.
var placeholderSecrets = map[string]struct{}{
	"your_api_key_here":       {},
	"your_first_api_key_here": {},
	"key1|key2|key3":          {},
	"changeme":                {},
}

// UsableSecret reports whether a raw secret is worth keeping. Format
// validation is the loader's job; this only rejects the obviously invalid:
// empty strings and known template placeholders.
func UsableSecret(secret string) bool {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return false
	}
	_, placeholder := placeholderSecrets[strings.ToLower(secret)]
	return !placeholder
}

// Store holds the validated, immutable credential set for the process
// lifetime. Thread-safe by immutability: nothing mutates it after
// construction. The zero value is a valid, permanently exhausted store.
type Store struct {
	creds  []Credential
	active []Credential
	byID   map[string]Credential
}

// NewStore builds a store from raw secrets, assigning positional IDs.
// Empty and placeholder entries are dropped; it fails with ErrNoCredentials
// when nothing usable remains.
func NewStore(secrets []string) (*Store, error) {
	creds := make([]Credential, 0, len(secrets))
	for i, s := range secrets {
		s = strings.TrimSpace(s)
		if !UsableSecret(s) {
			continue
		}
		creds = append(creds, Credential{
			ID:     fmt.Sprintf("key-%d", i+1),
			Secret: s,
			Status: StatusActive,
		})
	}
	return NewStoreFrom(creds)
}

// NewStoreFrom builds a store from already-assembled credentials, typically
// the output of one or more Sources. Credential IDs must be unique.
func NewStoreFrom(creds []Credential) (*Store, error) {
	kept := make([]Credential, 0, len(creds))
	byID := make(map[string]Credential, len(creds))
	for _, c := range creds {
		if !UsableSecret(c.Secret) {
			continue
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("key-%d", len(kept)+1)
		}
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate credential id %q", c.ID)
		}
		if c.Status == "" {
			c.Status = StatusActive
		}
		byID[c.ID] = c
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return nil, ErrNoCredentials
	}

	active := make([]Credential, 0, len(kept))
	for _, c := range kept {
		if c.Active() {
			active = append(active, c)
		}
	}
	return &Store{creds: kept, active: active, byID: byID}, nil
}

// List returns all credentials in their original order.
func (s *Store) List() []Credential {
	if s == nil {
		return nil
	}
	out := make([]Credential, len(s.creds))
	copy(out, s.creds)
	return out
}

// Active returns the credentials eligible for rotation, in original order.
func (s *Store) Active() []Credential {
	if s == nil {
		return nil
	}
	out := make([]Credential, len(s.active))
	copy(out, s.active)
	return out
}

// Get looks up a credential by ID.
func (s *Store) Get(id string) (Credential, bool) {
	if s == nil {
		return Credential{}, false
	}
	c, ok := s.byID[id]
	return c, ok
}

// Count returns the number of credentials held, including disabled ones.
func (s *Store) Count() int {
	if s == nil {
		return 0
	}
	return len(s.creds)
}
