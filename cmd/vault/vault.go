package vaultcmd

import (
	cfgpkg "github.com/blastlab/testgen/internal/config"
	vpkg "github.com/blastlab/testgen/internal/vault"
	"github.com/spf13/cobra"
)

// VaultCmd is the root for `testgen vault` commands.
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage provider API keys (macOS Keychain, or TESTGEN_SECRET_* env vars)",
}

func init() {
	VaultCmd.AddCommand(setCmd)
	VaultCmd.AddCommand(showCmd)
	VaultCmd.AddCommand(unsetCmd)
}

func openStore() (vpkg.Store, string, error) {
	cfg, err := cfgpkg.Load()
	if err != nil {
		return nil, "", err
	}
	st, err := vpkg.New(cfg.Vault.Backend)
	return st, cfg.Vault.Backend, err
}
