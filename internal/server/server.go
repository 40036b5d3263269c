package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/blastlab/testgen/internal/paths"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

const shutdownGrace = 10 * time.Second

// DefaultPIDPath is <home>/server.pid.
func DefaultPIDPath() string {
	return filepath.Join(paths.Home(), "server.pid")
}

// DefaultLogPath is where a detached server writes its output.
func DefaultLogPath() string {
	return filepath.Join(paths.Home(), "server.log")
}

// Options describes what Run serves.
type Options struct {
	HTTPAddr string
	Handler  http.Handler
	// GRPCAddr enables the gRPC listener when non-empty.
	GRPCAddr string
	Register func(*grpc.Server)
	Logger   zerolog.Logger
}

// Run serves HTTP, and gRPC when configured, until ctx is cancelled or a
// listener fails. Both listeners stop together.
func Run(ctx context.Context, opts Options) error {
	hl, err := net.Listen("tcp", opts.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	var gl net.Listener
	if opts.GRPCAddr != "" {
		if gl, err = net.Listen("tcp", opts.GRPCAddr); err != nil {
			_ = hl.Close()
			return fmt.Errorf("listen grpc: %w", err)
		}
	}
	return Serve(ctx, hl, gl, opts)
}

// Serve is Run on pre-opened listeners; grpcLis may be nil.
func Serve(ctx context.Context, httpLis, grpcLis net.Listener, opts Options) error {
	g, ctx := errgroup.WithContext(ctx)

	hs := &http.Server{Handler: opts.Handler, ReadHeaderTimeout: 10 * time.Second}
	g.Go(func() error {
		opts.Logger.Info().Str("addr", httpLis.Addr().String()).Msg("proxy listening")
		if err := hs.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return hs.Shutdown(sctx)
	})

	if grpcLis != nil {
		gs := grpc.NewServer()
		if opts.Register != nil {
			opts.Register(gs)
		}
		reflection.Register(gs)
		g.Go(func() error {
			opts.Logger.Info().Str("addr", grpcLis.Addr().String()).Msg("grpc listening")
			if err := gs.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			gs.GracefulStop()
			return nil
		})
	}
	return g.Wait()
}

// RunForeground writes the pid file and runs until SIGINT or SIGTERM.
func RunForeground(opts Options, pidPath string) error {
	if err := writePID(pidPath); err != nil {
		return err
	}
	defer removePID(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	err := Run(ctx, opts)
	opts.Logger.Info().Msg("server stopped")
	return err
}

func writePID(pidPath string) error {
	if _, err := os.Stat(pidPath); err == nil {
		return fmt.Errorf("pid file exists: %s", pidPath)
	}
	if err := os.MkdirAll(filepath.Dir(pidPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(pidPath, []byte(fmt.Sprintf("%d", os.Getpid())), 0o644)
}

func removePID(pidPath string) {
	_ = os.Remove(pidPath)
}

// ReadPID returns the pid recorded in pidPath.
func ReadPID(pidPath string) (int, error) {
	b, err := os.ReadFile(pidPath)
	if err != nil {
		return 0, err
	}
	var pid int
	if _, err := fmt.Sscanf(string(b), "%d", &pid); err != nil {
		return 0, err
	}
	return pid, nil
}

// DetachAttr returns platform-specific attributes to detach a process.
func DetachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
