package vaultcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show metadata about a secret (never prints the value)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, backend, err := openStore()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		md, err := st.Metadata(ctx, args[0])
		if err != nil {
			return err
		}
		status := "unset"
		if md.IsSet {
			status = "set"
		}
		if md.Backend != "" {
			backend = md.Backend
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name: %s\n", md.Name)
		fmt.Fprintf(out, "Status: %s\n", status)
		fmt.Fprintf(out, "Backend: %s\n", backend)
		if md.UpdatedAt != nil {
			fmt.Fprintf(out, "Last Updated: %s\n", md.UpdatedAt.Format(time.RFC3339))
		}
		return nil
	},
}
