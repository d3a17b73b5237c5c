// Package serve implements the serve command, which exposes the assessment
// over HTTP.
package serve

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/server"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Run executes the serve command.
func Run(args []string) error {
	var (
		configFile string
		addr       string
	)

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.StringVar(&configFile, "config", "", "Configuration file (YAML)")
	fs.StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess serve [options]

Serve the JSON API and report downloads.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess serve
  gxpassess serve --addr :9090 --config gxpassess.yaml`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.GetGlobalLogger()
	env, err := app.OpenPath(ctx, configFile, log)
	if err != nil {
		return err
	}
	defer env.Close()

	if addr == "" {
		addr = env.Config.Server.Addr
	}
	return Serve(ctx, env, addr)
}

// Serve runs the HTTP server and the storage watcher until ctx is canceled
// or either fails.
func Serve(ctx context.Context, env *app.Env, addr string) error {
	unsubscribe := env.Store.Subscribe(func(key string) {
		env.Logger.Debug("Storage changed", "key", key)
	})
	defer unsubscribe()

	srv := server.New(env.Service, env.Reports, server.WithLogger(env.Logger))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return env.Store.Watch(ctx)
	})
	g.Go(func() error {
		return srv.ListenAndServe(ctx, addr)
	})
	return g.Wait()
}
