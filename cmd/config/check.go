package configcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blastlab/testgen/internal/backend"
	cfgpkg "github.com/blastlab/testgen/internal/config"
	"github.com/blastlab/testgen/internal/vault"
	"github.com/spf13/cobra"
)

var flagSecrets bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration and report issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		errOut := cmd.ErrOrStderr()
		problems := cfgpkg.Check(cfg)

		provider := backend.ProviderType(strings.ToLower(cfg.Backend.Provider))
		if backend.NeedsSecret(provider) && cfg.Backend.APIKeySecret == "" {
			problems = append(problems, fmt.Sprintf("backend.api_key_secret is required for provider %q", provider))
		}

		if flagSecrets && cfg.Backend.APIKeySecret != "" {
			// Only show presence/absence, not values
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			st, err := vault.New(cfg.Vault.Backend)
			if err != nil {
				problems = append(problems, err.Error())
			} else if md, err := st.Metadata(ctx, cfg.Backend.APIKeySecret); err != nil {
				problems = append(problems, err.Error())
			} else {
				fmt.Fprintf(errOut, "- %s (%s): set=%v\n", md.Name, md.Backend, md.IsSet)
				if !md.IsSet {
					problems = append(problems, fmt.Sprintf("secret %q is not set", md.Name))
				}
			}
		}

		if len(problems) > 0 {
			fmt.Fprintln(errOut, "Configuration issues:")
			for _, p := range problems {
				fmt.Fprintf(errOut, "- %s\n", p)
			}
			return errors.New(strings.Join(problems, "; "))
		}
		fmt.Fprintln(errOut, "Configuration looks valid.")
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&flagSecrets, "secrets", false, "Report whether the configured API key secret is set")
}
