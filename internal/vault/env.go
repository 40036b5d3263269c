package vault

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvPrefix is prepended to the upper-cased secret name, e.g. TESTGEN_SECRET_OPENAI_KEY.
const EnvPrefix = "TESTGEN_SECRET_"

// EnvStore reads secrets from environment variables. It cannot write.
type EnvStore struct {
	getenv func(string) (string, bool)
}

// NewEnvStore returns an EnvStore; a nil lookup uses os.LookupEnv.
func NewEnvStore(lookup func(string) (string, bool)) *EnvStore {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &EnvStore{getenv: lookup}
}

// EnvName maps a secret name to its variable: dashes and dots become underscores.
func EnvName(name string) string {
	r := strings.NewReplacer("-", "_", ".", "_", " ", "_")
	return EnvPrefix + strings.ToUpper(r.Replace(strings.TrimSpace(name)))
}

func (s *EnvStore) Metadata(ctx context.Context, name string) (SecretMetadata, error) {
	v, ok := s.getenv(EnvName(name))
	return SecretMetadata{Name: name, IsSet: ok && v != "", Backend: BackendEnv}, nil
}

func (s *EnvStore) Set(ctx context.Context, name string, value []byte) error {
	return fmt.Errorf("%w: export %s instead", ErrReadOnly, EnvName(name))
}

func (s *EnvStore) Unset(ctx context.Context, name string) error {
	return fmt.Errorf("%w: unset %s instead", ErrReadOnly, EnvName(name))
}

func (s *EnvStore) Get(ctx context.Context, name string) ([]byte, error) {
	v, ok := s.getenv(EnvName(name))
	if !ok || v == "" {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, name, EnvName(name))
	}
	return []byte(v), nil
}
