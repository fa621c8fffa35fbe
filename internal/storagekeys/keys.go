// Package storagekeys names the keys under which the client persists local
// state. The key strings are stable across releases so persisted data keeps
// resolving after an upgrade.
package storagekeys

import (
	"errors"
	"fmt"
	"strings"
)

// Key namespaces a single persisted value.
type Key string

const (
	AccessToken Key = "access_token"
	UserData    Key = "user_data"
	GuestToken  Key = "guest_token"
	TableToken  Key = "table_token"
)

var (
	// ErrEmptyKey indicates a key in the set has no name.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrDuplicateKey indicates two logical names share the same key string.
	ErrDuplicateKey = errors.New("storage keys must be distinct")
)

// Set maps each logical name to its persisted key.
type Set struct {
	AccessToken Key `json:"accessToken" yaml:"access_token"`
	UserData    Key `json:"userData" yaml:"user_data"`
	GuestToken  Key `json:"guestToken" yaml:"guest_token"`
	TableToken  Key `json:"tableToken" yaml:"table_token"`
}

// Default returns the key set used by every released client.
func Default() Set {
	return Set{
		AccessToken: AccessToken,
		UserData:    UserData,
		GuestToken:  GuestToken,
		TableToken:  TableToken,
	}
}

// All returns the keys in declaration order.
func (s Set) All() []Key {
	return []Key{s.AccessToken, s.UserData, s.GuestToken, s.TableToken}
}

// Contains reports whether k belongs to the set.
func (s Set) Contains(k Key) bool {
	for _, candidate := range s.All() {
		if candidate == k {
			return true
		}
	}
	return false
}

// Validate ensures every key is non-empty and pairwise distinct.
func (s Set) Validate() error {
	seen := make(map[Key]struct{}, 4)
	for _, k := range s.All() {
		if strings.TrimSpace(string(k)) == "" {
			return ErrEmptyKey
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %q used twice", ErrDuplicateKey, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

func (k Key) String() string {
	return string(k)
}
