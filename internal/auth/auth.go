// Package auth implements the local passphrase gate. It is a thin
// convenience check against casual access to a shared terminal, not a
// security boundary: the passphrase sits next to the data it guards.
package auth

import (
	"errors"
	"fmt"

	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
)

// MinLength is the minimum passphrase length
const MinLength = 4

var (
	ErrTooShort  = errors.New("passphrase must be at least 4 characters")
	ErrMismatch  = errors.New("passphrases do not match")
	ErrIncorrect = errors.New("incorrect passphrase")
)

// Gate checks and sets the master passphrase in the blob store
type Gate struct {
	backend storage.Backend
}

// NewGate creates a gate over the blob backend
func NewGate(backend storage.Backend) *Gate {
	return &Gate{backend: backend}
}

// IsSet reports whether a passphrase has been stored yet
func (g *Gate) IsSet() (bool, error) {
	_, found, err := g.backend.Load(storage.KeyPassphrase)
	if err != nil {
		return false, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return found, nil
}

// Set stores the passphrase on first run. Both entries must match and
// meet the minimum length.
func (g *Gate) Set(passphrase, confirm string) error {
	if len(passphrase) < MinLength {
		return ErrTooShort
	}
	if passphrase != confirm {
		return ErrMismatch
	}
	if err := g.backend.Save(storage.KeyPassphrase, []byte(passphrase)); err != nil {
		return fmt.Errorf("failed to store passphrase: %w", err)
	}
	return nil
}

// Check verifies a passphrase against the stored one
func (g *Gate) Check(passphrase string) error {
	stored, found, err := g.backend.Load(storage.KeyPassphrase)
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if !found || string(stored) != passphrase {
		return ErrIncorrect
	}
	return nil
}
