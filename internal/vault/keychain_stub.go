//go:build !darwin

package vault

import (
	"context"
	"errors"
)

var errNoKeychain = errors.New("keychain backend not supported on this OS; use vault.backend: env")

type KeychainStore struct{}

func newKeychainStore() (Store, error) { return nil, errNoKeychain }

func (d *KeychainStore) Metadata(ctx context.Context, name string) (SecretMetadata, error) {
	return SecretMetadata{Name: name, Backend: BackendKeychain}, errNoKeychain
}
func (d *KeychainStore) Set(ctx context.Context, name string, value []byte) error {
	return errNoKeychain
}
func (d *KeychainStore) Unset(ctx context.Context, name string) error { return errNoKeychain }
func (d *KeychainStore) Get(ctx context.Context, name string) ([]byte, error) {
	return nil, errNoKeychain
}
