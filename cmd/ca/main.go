//go:build ebiten

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"cmr-ca/internal/app"
	"cmr-ca/internal/core"
	"cmr-ca/internal/logging"
	_ "cmr-ca/internal/presets"
	"cmr-ca/internal/template"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
)

func main() {
	cfg := app.NewConfig()
	logCfg := logging.DefaultConfig()
	cfg.Bind(pflag.CommandLine)
	logCfg.Bind(pflag.CommandLine)
	pflag.Parse()

	logger, err := logging.New(logCfg)
	if err != nil {
		slog.Error("configure logging", "error", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	a, err := open(cfg, logger)
	if err != nil {
		logger.Error("open automaton", "error", err)
		os.Exit(1)
	}

	game := app.New(a, cfg.Scale, cfg.Rate, cfg.HUDWidth)
	w, h := game.Layout(0, 0)

	if cfg.Watch && cfg.Template != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := template.Watch(ctx, cfg.Template, func(t template.Template, warnings []template.Warning, err error) {
				if err != nil {
					logger.Warn("template reload failed", "path", cfg.Template, "error", err)
					return
				}
				logging.Warnings(logger, "template entry replaced", warnings, "template", cfg.Template)
				logger.Info("template reloaded", "path", cfg.Template, "rules", len(t.Rules))
				game.ReplaceRules(t.Rules)
			})
			if err != nil {
				logger.Error("watch template", "path", cfg.Template, "error", err)
			}
		}()
	}

	ebiten.SetWindowTitle(app.Title(a))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}

func open(cfg *app.Config, logger *slog.Logger) (core.Automaton, error) {
	if cfg.Template == "" {
		return core.Open(cfg.Automaton, cfg.Overrides)
	}
	t, warnings, err := template.Load(cfg.Template)
	logging.Warnings(logger, "template entry replaced", warnings, "template", cfg.Template)
	if err != nil {
		return nil, err
	}
	t, opts := template.FromMap(t, cfg.Overrides)
	e, warnings, err := template.Build(t, opts)
	if err != nil {
		return nil, err
	}
	logging.Warnings(logger, "template entry replaced", warnings, "template", cfg.Template)
	return e, nil
}
