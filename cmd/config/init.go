package configcmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/blastlab/testgen/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagOverwrite bool
	flagDryRun    bool
	// Server
	flagServerPort int
	flagGRPCPort   int
	// Backend
	flagProvider     string
	flagBackendURL   string
	flagModel        string
	flagAPIKeySecret string
	flagOutput       string
	// Client
	flagProxyURL string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the global config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgpkg.Path()
		if !flagOverwrite && !flagDryRun {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s (use --overwrite to replace)", path)
			}
		}

		// Start from existing config (or defaults if missing)
		cfg, _ := cfgpkg.Load()

		if cmd.Flags().Changed("server-port") {
			cfg.Server.Port = flagServerPort
		}
		if cmd.Flags().Changed("grpc-port") {
			cfg.Server.GRPCPort = flagGRPCPort
		}
		if cmd.Flags().Changed("provider") {
			cfg.Backend.Provider = flagProvider
		}
		if cmd.Flags().Changed("backend-url") {
			cfg.Backend.URL = flagBackendURL
		}
		if cmd.Flags().Changed("model") {
			cfg.Backend.Model = flagModel
		}
		if cmd.Flags().Changed("api-key-secret") {
			cfg.Backend.APIKeySecret = flagAPIKeySecret
		}
		if cmd.Flags().Changed("output") {
			cfg.Backend.Output = flagOutput
		}
		if cmd.Flags().Changed("proxy-url") {
			cfg.Client.ProxyURL = flagProxyURL
		}

		if flagDryRun {
			b, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = out.Write(b)
			if len(b) == 0 || b[len(b)-1] != '\n' {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "dry-run: not writing %s\n", path)
			return nil
		}
		written, err := cfgpkg.Save(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote config to %s\n", written)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Overwrite existing config.yaml if present")
	initCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print merged config to stdout without writing")

	initCmd.Flags().IntVar(&flagServerPort, "server-port", cfgpkg.DefaultServerPort, "Proxy HTTP port")
	initCmd.Flags().IntVar(&flagGRPCPort, "grpc-port", 0, "gRPC port (0 disables gRPC)")

	initCmd.Flags().StringVar(&flagProvider, "provider", cfgpkg.DefaultProvider, "Backend provider: ollama, langchain-ollama, openai, gemini")
	initCmd.Flags().StringVar(&flagBackendURL, "backend-url", cfgpkg.DefaultBackendURL, "Backend base URL")
	initCmd.Flags().StringVar(&flagModel, "model", cfgpkg.DefaultModel, "Model name")
	initCmd.Flags().StringVar(&flagAPIKeySecret, "api-key-secret", "", "Vault secret name holding the provider API key")
	initCmd.Flags().StringVar(&flagOutput, "output", cfgpkg.DefaultOutputMode, "Model output handling: strict or lenient")

	initCmd.Flags().StringVar(&flagProxyURL, "proxy-url", "", "Proxy base URL used by chat and ask")
}
