package main

import (
	"log/slog"
	"os"

	"github.com/aretw0/skyscout"
	"github.com/aretw0/skyscout/internal/cli"
	"github.com/aretw0/skyscout/internal/presentation/tui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// env is the per-command runtime: signal context, logger, renderer and app.
type env struct {
	ctx      *cli.SignalContext
	logger   *slog.Logger
	theme    tui.Theme
	renderer *tui.Renderer
	app      *skyscout.App
}

func newEnv() (*env, error) {
	logger := cfg.Logger()
	ctx := cli.NewSignalContext(rootCmd.Context())

	tty := cli.IsTerminal(os.Stdout)
	theme, err := tui.ResolveTheme(cfg.UI.Theme, tty)
	if err != nil {
		ctx.Cancel()
		return nil, err
	}
	renderer, err := tui.NewRenderer(theme, cli.Width(os.Stdout))
	if err != nil {
		ctx.Cancel()
		return nil, err
	}

	opts := cli.AppOptions{
		Logger:   logger,
		Notifier: cli.NewNotifier(os.Stderr),
		Debug:    debug,
	}
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if _, err := cli.ServeMetrics(ctx, cfg.Metrics.Addr, reg, logger); err != nil {
			ctx.Cancel()
			return nil, err
		}
		opts.Registry = reg
	}

	app, err := cli.NewApp(cfg, opts)
	if err != nil {
		ctx.Cancel()
		return nil, err
	}

	return &env{ctx: ctx, logger: logger, theme: theme, renderer: renderer, app: app}, nil
}

func (e *env) Close() {
	e.app.Close()
	e.ctx.Cancel()
}
