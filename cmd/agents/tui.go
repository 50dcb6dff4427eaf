package main

import (
	"context"
	"errors"
	"fmt"

	"agents/internal/appearance"
	"agents/internal/config"
	"agents/internal/debug"
	"agents/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type programRunner interface {
	Run() (tea.Model, error)
	Send(tea.Msg)
}

type programFactory func(ctx context.Context, app *ui.App) programRunner

func newTeaProgram(ctx context.Context, app *ui.App) programRunner {
	return tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
}

// runTUI runs the interactive program alongside the OS color-scheme watcher.
// Whichever finishes first stops the other.
func runTUI(ctx context.Context, e *env, cfg ui.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.newProgram == nil {
		return fmt.Errorf("program factory is nil")
	}

	// The terminal background query must happen before the program owns
	// stdin; later polls reuse the cached answer.
	var primed *bool
	if e.detector != nil {
		if dark, err := e.detector.PrefersDark(); err == nil {
			primed = &dark
		} else {
			debug.L().Debug("initial color scheme unknown", zap.Error(err))
		}
	}

	zones := zone.New()
	defer zones.Close()
	cfg.Zones = zones

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := ui.NewApp(cfg)
	prog := e.newProgram(ctx, app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run UI: %w", err)
		}
		return nil
	})
	if e.detector != nil {
		watcher := appearance.NewWatcher(e.detector, config.GetDuration(config.KeyPollInterval), func(dark bool) {
			prog.Send(ui.SchemeChangedMsg{PrefersDark: dark})
		})
		if primed != nil {
			watcher.Prime(*primed)
		}
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}
	return g.Wait()
}
