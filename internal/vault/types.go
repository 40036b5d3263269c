package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store manages provider API keys in a secret backend.
// Implementations must never log or print secret values.
type Store interface {
	// Metadata reports whether name is set. An unset secret is not an error.
	Metadata(ctx context.Context, name string) (SecretMetadata, error)
	// Set creates or updates a secret value.
	Set(ctx context.Context, name string, value []byte) error
	// Unset deletes the secret.
	Unset(ctx context.Context, name string) error
	// Get fetches the raw value for internal use only.
	Get(ctx context.Context, name string) ([]byte, error)
}

// SecretMetadata contains non-sensitive information about a secret.
type SecretMetadata struct {
	Name      string
	IsSet     bool
	Backend   string
	UpdatedAt *time.Time
}

const (
	// ServiceName groups all testgen secrets in the Keychain.
	ServiceName = "testgen-vault"

	BackendKeychain = "keychain"
	BackendEnv      = "env"
)

var (
	ErrNotFound = errors.New("secret not found")
	ErrReadOnly = errors.New("vault backend is read-only")
)

// New constructs a Store for the selected backend.
func New(backend string) (Store, error) {
	switch backend {
	case "", BackendKeychain:
		return newKeychainStore()
	case BackendEnv:
		return NewEnvStore(nil), nil
	default:
		return nil, fmt.Errorf("vault backend not implemented: %s", backend)
	}
}

// Lookup resolves the secret name from backend and returns it as a string.
func Lookup(ctx context.Context, backend, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("vault: empty secret name")
	}
	s, err := New(backend)
	if err != nil {
		return "", err
	}
	b, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
