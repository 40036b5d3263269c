package chat

import (
	"fmt"
	"path/filepath"

	chatpkg "github.com/blastlab/testgen/internal/chat"
	"github.com/blastlab/testgen/internal/client"
	cfgpkg "github.com/blastlab/testgen/internal/config"
	"github.com/blastlab/testgen/internal/logging"
	"github.com/blastlab/testgen/internal/paths"
	chatui "github.com/blastlab/testgen/internal/ui/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagProxyURL  string
	flagExportDir string
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive test-case generator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		home, err := paths.EnsureHome()
		if err != nil {
			return err
		}
		// the terminal belongs to the UI; logs go to a file
		logger, closer, err := logging.SetupFile(filepath.Join(home, "chat.log"), cfg.Log.Level)
		if err != nil {
			return err
		}
		defer closer.Close()

		proxy := cfg.Client.ProxyURL
		if flagProxyURL != "" {
			proxy = flagProxyURL
		}
		sender := &chatpkg.Sender{
			Conv: chatpkg.NewConversation(),
			Gen:  client.New(proxy, nil),
			Log:  logger,
		}
		m := chatui.New(cmd.Context(), chatui.Options{Sender: sender, ExportDir: flagExportDir})
		logger.Info().Str("session", m.Session()).Str("proxy", proxy).Msg("chat started")

		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("chat: %w", err)
		}
		return nil
	},
}

func init() {
	ChatCmd.Flags().StringVar(&flagProxyURL, "proxy", "", "Proxy base URL (defaults to config client.proxy_url)")
	ChatCmd.Flags().StringVar(&flagExportDir, "export-dir", ".", "Directory for Ctrl+E CSV exports")
}
