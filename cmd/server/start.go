package server

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	cfgpkg "github.com/blastlab/testgen/internal/config"
	"github.com/blastlab/testgen/internal/paths"
	srv "github.com/blastlab/testgen/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagDetach   bool
	flagAddr     string
	flagGRPCAddr string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the proxy (POST /api/generate)",
	RunE: func(cmd *cobra.Command, args []string) error {
		pidPath := srv.DefaultPIDPath()
		if flagDetach {
			return startDetached(cmd, pidPath)
		}

		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		if problems := cfgpkg.Check(cfg); len(problems) > 0 {
			return fmt.Errorf("invalid config: %v", problems)
		}
		ctx := context.Background()
		opts, err := srv.NewOptions(ctx, cfg, srv.VaultLookup(cfg.Vault.Backend), log.Logger)
		if err != nil {
			return err
		}
		if flagAddr != "" {
			opts.HTTPAddr = flagAddr
		}
		if flagGRPCAddr != "" {
			opts.GRPCAddr = flagGRPCAddr
		}
		log.Info().
			Str("provider", cfg.Backend.Provider).
			Str("backend", cfg.Backend.URL).
			Str("model", cfg.Backend.Model).
			Str("output", cfg.Backend.Output).
			Msg("starting proxy")
		return srv.RunForeground(opts, pidPath)
	},
}

// startDetached re-execs the binary in foreground mode as a session leader.
func startDetached(cmd *cobra.Command, pidPath string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	if _, err := paths.EnsureHome(); err != nil {
		return err
	}
	args := []string{"server", "start", "--no-detach", "--log-format", "json"}
	if flagAddr != "" {
		args = append(args, "--addr", flagAddr)
	}
	if flagGRPCAddr != "" {
		args = append(args, "--grpc-addr", flagGRPCAddr)
	}
	child := exec.Command(exe, args...)
	lf, _ := os.OpenFile(srv.DefaultLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if lf != nil {
		defer lf.Close()
		child.Stdout = lf
		child.Stderr = lf
	}
	if runtime.GOOS != "windows" {
		child.SysProcAttr = srv.DetachAttr()
	}
	if err := child.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "server started in background (pid=%d, log=%s)\n", child.Process.Pid, srv.DefaultLogPath())
	return nil
}

func init() {
	startCmd.Flags().BoolVar(&flagDetach, "detach", false, "Run in background")
	// Hidden internal flag to prevent loop when re-execing for detach
	startCmd.Flags().Bool("no-detach", false, "internal")
	_ = startCmd.Flags().MarkHidden("no-detach")
	startCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address override (defaults to config, :3001)")
	startCmd.Flags().StringVar(&flagGRPCAddr, "grpc-addr", "", "Enable the gRPC GenerateService on this address")
}
