package server

import (
	"fmt"
	"os"
	"syscall"

	srv "github.com/blastlab/testgen/internal/server"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running proxy gracefully",
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := srv.ReadPID(srv.DefaultPIDPath())
		if err != nil {
			return err
		}
		proc, err := os.FindProcess(pid)
		if err != nil {
			return err
		}
		// SIGTERM triggers graceful shutdown; Kill where signals are unsupported.
		if err := proc.Signal(syscall.SIGTERM); err != nil {
			_ = proc.Kill()
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "stop signal sent to pid=%d\n", pid)
		return nil
	},
}
