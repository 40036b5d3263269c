package tools

import (
	"fmt"

	"github.com/blastlab/testgen/internal/backend"
	"github.com/blastlab/testgen/internal/exitcode"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const handshakePrompt = "Hello, are you ready for testing?"

var handshakeCmd = &cobra.Command{
	Use:   "handshake",
	Short: "Check that the backend answers a free-text prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, bc, err := loadBackend(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Handshake Refused: %s\n", err)
			return exitcode.New(1)
		}
		log.Debug().Str("url", bc.URL).Str("model", bc.Model).Msg("handshake")
		text, err := b.Generate(ctx, backend.Request{Model: bc.Model, Prompt: handshakePrompt})
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Handshake Refused: %s\n", handshakeFailure(err))
			return exitcode.New(1)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Handshake Accepted!")
		fmt.Fprintf(out, "Response: %s\n", text)
		return nil
	},
}
