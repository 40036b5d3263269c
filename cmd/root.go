package cmd

import (
	askcmd "github.com/blastlab/testgen/cmd/ask"
	chatcmd "github.com/blastlab/testgen/cmd/chat"
	configcmd "github.com/blastlab/testgen/cmd/config"
	srvcmd "github.com/blastlab/testgen/cmd/server"
	toolscmd "github.com/blastlab/testgen/cmd/tools"
	vaultcmd "github.com/blastlab/testgen/cmd/vault"
	cfgpkg "github.com/blastlab/testgen/internal/config"
	"github.com/blastlab/testgen/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "testgen",
	Short: "Generate structured software test cases from plain-language requirements",
	Long: "testgen runs a proxy in front of a local LLM that turns a requirement into\n" +
		"JSON test cases, a terminal chat client for it, and diagnostics for the backend.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// commands that need the config report load errors themselves
		cfg, loadErr := cfgpkg.Load()
		if loadErr != nil {
			cfg = cfgpkg.Defaults()
		}
		level, format := cfg.Log.Level, cfg.Log.Format
		if cmd.Flags().Changed("log-level") {
			level = flagLogLevel
		}
		if cmd.Flags().Changed("log-format") {
			format = flagLogFormat
		}
		logger := logging.Setup(cmd.ErrOrStderr(), level, format)
		if loadErr != nil {
			logger.Debug().Err(loadErr).Msg("config not loaded, using defaults for logging")
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "Log format (console or json)")

	rootCmd.AddCommand(srvcmd.ServerCmd)
	rootCmd.AddCommand(toolscmd.ToolsCmd)
	rootCmd.AddCommand(chatcmd.ChatCmd)
	rootCmd.AddCommand(askcmd.AskCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(vaultcmd.VaultCmd)
}
