package tools

import (
	"fmt"

	"github.com/blastlab/testgen/internal/backend"
	"github.com/blastlab/testgen/internal/exitcode"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt> [model]",
	Short: "Send a JSON-mode prompt to the backend and print the raw text",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, bc, err := loadBackend(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Tool Failed: %s\n", err)
			return exitcode.New(1)
		}
		model := bc.Model
		if len(args) == 2 && args[1] != "" {
			model = args[1]
		}
		text, err := b.Generate(ctx, backend.Request{Model: model, Prompt: args[0], Format: backend.FormatJSON})
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Tool Failed: %s\n", generateFailure(err))
			return exitcode.New(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
