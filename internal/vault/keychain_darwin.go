//go:build darwin

package vault

import (
	"context"
	"fmt"

	keychain "github.com/keybase/go-keychain"
)

// KeychainStore keeps secrets as generic passwords under
// Service=testgen-vault and Account=<name>.
type KeychainStore struct{}

func newKeychainStore() (Store, error) { return &KeychainStore{}, nil }

func query(name string) keychain.Item {
	q := keychain.NewItem()
	q.SetSecClass(keychain.SecClassGenericPassword)
	q.SetService(ServiceName)
	q.SetAccount(name)
	return q
}

func (d *KeychainStore) Metadata(ctx context.Context, name string) (SecretMetadata, error) {
	md := SecretMetadata{Name: name, Backend: BackendKeychain}
	q := query(name)
	q.SetMatchLimit(keychain.MatchLimitOne)
	q.SetReturnAttributes(true)
	rr, err := keychain.QueryItem(q)
	if err != nil {
		return md, fmt.Errorf("keychain query: %w", err)
	}
	if len(rr) == 0 {
		return md, nil
	}
	md.IsSet = true
	if !rr[0].ModificationDate.IsZero() {
		t := rr[0].ModificationDate
		md.UpdatedAt = &t
	}
	return md, nil
}

func (d *KeychainStore) Set(ctx context.Context, name string, value []byte) error {
	item := query(name)
	item.SetLabel("testgen secret: " + name)
	item.SetData(value)
	item.SetAccessible(keychain.AccessibleAfterFirstUnlock)

	// update in place, add when missing
	if err := keychain.UpdateItem(query(name), item); err != nil {
		if aerr := keychain.AddItem(item); aerr != nil {
			return fmt.Errorf("keychain add: %w", aerr)
		}
	}
	return nil
}

func (d *KeychainStore) Unset(ctx context.Context, name string) error {
	return keychain.DeleteItem(query(name))
}

func (d *KeychainStore) Get(ctx context.Context, name string) ([]byte, error) {
	q := query(name)
	q.SetMatchLimit(keychain.MatchLimitOne)
	q.SetReturnData(true)
	rr, err := keychain.QueryItem(q)
	if err != nil {
		return nil, fmt.Errorf("keychain get: %w", err)
	}
	if len(rr) == 0 || rr[0].Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	out := make([]byte, len(rr[0].Data))
	copy(out, rr[0].Data)
	return out, nil
}
