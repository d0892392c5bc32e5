package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/looper/internal/logging"
	"github.com/danmuck/looper/internal/runner"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, defaultConfigPath); err != nil {
		fatalf("%v", err)
	}
}

// run blocks until ctx ends (nil) or the runner fails to start or write.
func run(ctx context.Context, out io.Writer, path string) error {
	cfg, err := loadRunnerConfig(path)
	if err != nil {
		return err
	}
	log.Debug().Dur("interval", cfg.Interval).Str("path", path).Msg("loaded looper config")

	r := runner.New(cfg, out)
	if err := r.Run(ctx); err != nil {
		return err
	}
	<-r.Done()
	return r.Err()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "looper: "+format+"\n", args...)
	os.Exit(1)
}
