package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophsocial/internal/buildinfo"
	"github.com/dmitrijs2005/gophsocial/internal/client/cli"
	"github.com/dmitrijs2005/gophsocial/internal/client/config"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, closer := newLogger(cfg)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		return err
	}

	return app.Run(ctx)
}

// newLogger logs to a rotated file so that the prompt stays readable, or
// to stderr when LogFile is "-".
func newLogger(cfg *config.Config) (logging.Logger, io.Closer) {
	if cfg.LogFile == config.LogToStderr {
		return logging.NewTextLogger(os.Stderr, cfg.LogLevel), io.NopCloser(nil)
	}

	zl, rotator := logging.NewFileLogger(logging.FileConfig{Path: cfg.LogFile, Level: cfg.LogLevel})
	return zl, closerFunc(func() error {
		_ = zl.Sync()
		return rotator.Close()
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
