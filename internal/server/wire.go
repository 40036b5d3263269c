package server

import (
	"context"
	"fmt"

	"github.com/blastlab/testgen/internal/backend"
	"github.com/blastlab/testgen/internal/config"
	httpgen "github.com/blastlab/testgen/internal/http/generate"
	rpcgen "github.com/blastlab/testgen/internal/server/generate"
	gensvc "github.com/blastlab/testgen/internal/service/generate"
	"github.com/blastlab/testgen/internal/service/generate/normalize"
	"github.com/blastlab/testgen/internal/vault"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// SecretLookup resolves a vault secret by name.
type SecretLookup func(ctx context.Context, name string) (string, error)

// VaultLookup reads secrets from the configured vault backend.
func VaultLookup(backendName string) SecretLookup {
	return func(ctx context.Context, name string) (string, error) {
		return vault.Lookup(ctx, backendName, name)
	}
}

// NewBackend builds the inference backend selected by cfg.
func NewBackend(ctx context.Context, cfg config.BackendConfig, lookup SecretLookup) (backend.Backend, error) {
	bc := backend.FromConfig(cfg)
	var secret *backend.Secret
	if backend.NeedsSecret(bc.Provider) && cfg.APIKeySecret != "" {
		if lookup == nil {
			return nil, fmt.Errorf("backend: provider %q needs a secret lookup", bc.Provider)
		}
		v, err := lookup(ctx, cfg.APIKeySecret)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", cfg.APIKeySecret, err)
		}
		secret = &backend.Secret{Value: v}
	}
	return backend.NewFactory().New(ctx, bc, secret)
}

// NewOptions assembles the HTTP router, Connect bridge and gRPC service
// around a single generate.Service.
func NewOptions(ctx context.Context, cfg config.Config, lookup SecretLookup, log zerolog.Logger) (Options, error) {
	mode, err := normalize.ParseMode(cfg.Backend.Output)
	if err != nil {
		return Options{}, err
	}
	b, err := NewBackend(ctx, cfg.Backend, lookup)
	if err != nil {
		return Options{}, err
	}
	svc := gensvc.New(b, gensvc.Options{Model: cfg.Backend.Model, Output: mode, Logger: log})

	rpc := &rpcgen.Service{Generator: svc}
	r := httpgen.New(svc, log).Router()
	r.Handle(rpcgen.ConnectRoute, rpc.ConnectHandler())

	return Options{
		HTTPAddr: cfg.Server.Addr(),
		Handler:  r,
		GRPCAddr: cfg.Server.GRPCAddr(),
		Register: func(s *grpc.Server) { rpc.Register(s) },
		Logger:   log,
	}, nil
}
