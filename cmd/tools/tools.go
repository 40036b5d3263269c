package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/blastlab/testgen/internal/backend"
	cfgpkg "github.com/blastlab/testgen/internal/config"
	srv "github.com/blastlab/testgen/internal/server"
	"github.com/spf13/cobra"
)

var (
	flagURL      string
	flagProvider string
)

// ToolsCmd groups operator diagnostics that talk to the backend directly.
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Diagnose the inference backend and validate model output",
}

func init() {
	ToolsCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Backend base URL override (defaults to config backend.url)")
	ToolsCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Backend provider override (defaults to config backend.provider)")
	ToolsCmd.AddCommand(handshakeCmd)
	ToolsCmd.AddCommand(generateCmd)
	ToolsCmd.AddCommand(verifyCmd)
}

// loadBackend builds the configured backend with flag overrides applied.
func loadBackend(ctx context.Context) (backend.Backend, cfgpkg.BackendConfig, error) {
	cfg, err := cfgpkg.Load()
	if err != nil {
		return nil, cfgpkg.BackendConfig{}, err
	}
	bc := cfg.Backend
	if flagURL != "" {
		bc.URL = flagURL
	}
	if flagProvider != "" {
		bc.Provider = flagProvider
	}
	b, err := srv.NewBackend(ctx, bc, srv.VaultLookup(cfg.Vault.Backend))
	return b, bc, err
}

// handshakeFailure reports non-2xx replies by status code.
func handshakeFailure(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("HTTP Error: %d", se.Code)
	}
	return err.Error()
}

// generateFailure reports non-2xx replies by reason phrase.
func generateFailure(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return "Ollama Error: " + se.StatusText()
	}
	return err.Error()
}
