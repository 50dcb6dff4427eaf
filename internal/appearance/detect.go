// Package appearance reads the host's light/dark color-scheme signal.
package appearance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	apperrors "agents/internal/errors"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// EnvVar forces the signal, bypassing desktop and terminal detection.
const EnvVar = "AGENTS_COLOR_SCHEME"

// ErrUndetermined is returned when no detector could produce a signal.
var ErrUndetermined = apperrors.New(apperrors.CodeDetectorUnavailable, "color scheme could not be determined", nil)

// Detector reports whether the host prefers a dark appearance.
type Detector interface {
	Name() string
	PrefersDark() (bool, error)
}

// Chain asks each detector in order and returns the first answer.
type Chain []Detector

// Name implements Detector.
func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, d := range c {
		names = append(names, d.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// PrefersDark implements Detector.
func (c Chain) PrefersDark() (bool, error) {
	var errs []error
	for _, d := range c {
		dark, err := d.PrefersDark()
		if err == nil {
			return dark, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
	}
	return false, fmt.Errorf("%w: %w", ErrUndetermined, errors.Join(errs...))
}

// Default is the detection order used by the application: explicit
// environment override, then the desktop setting, then the terminal. The
// terminal answer is cached, so the desktop detector is what lets a running
// program see the OS switch.
func Default() Chain {
	return Chain{
		EnvDetector{},
		desktopDetector(),
		&TerminalDetector{},
	}
}

// EnvDetector reads AGENTS_COLOR_SCHEME (dark or light).
type EnvDetector struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

func (EnvDetector) Name() string { return "env" }

func (e EnvDetector) PrefersDark() (bool, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	raw, ok := lookup(EnvVar)
	if !ok || strings.TrimSpace(raw) == "" {
		return false, fmt.Errorf("%s not set", EnvVar)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	}
	return false, fmt.Errorf("%s=%q: want dark or light", EnvVar, raw)
}

// GSettingsDetector queries the GNOME color-scheme key, which most Linux
// desktops and the freedesktop portal mirror.
type GSettingsDetector struct {
	// Run executes a command and returns stdout. Defaults to exec.CommandContext.
	Run     func(ctx context.Context, name string, args ...string) ([]byte, error)
	Timeout time.Duration
}

func (*GSettingsDetector) Name() string { return "gsettings" }

func (g *GSettingsDetector) PrefersDark() (bool, error) {
	run := g.Run
	if run == nil {
		if _, err := exec.LookPath("gsettings"); err != nil {
			return false, err
		}
		run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		}
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return false, fmt.Errorf("query color-scheme: %w", err)
	}
	return parseGSettings(string(out))
}

func parseGSettings(out string) (bool, error) {
	value := strings.Trim(strings.TrimSpace(out), "'\"")
	switch value {
	case "prefer-dark":
		return true, nil
	case "prefer-light", "default":
		return false, nil
	}
	return false, fmt.Errorf("unexpected color-scheme %q", value)
}

// DarwinDetector reads the macOS AppleInterfaceStyle default. The key only
// exists while dark mode is on, so a missing key means light.
type DarwinDetector struct {
	// Run executes a command and returns stdout. Defaults to exec.CommandContext,
	// with a non-zero exit reported as empty output.
	Run     func(ctx context.Context, name string, args ...string) ([]byte, error)
	Timeout time.Duration
}

func (*DarwinDetector) Name() string { return "defaults" }

func (d *DarwinDetector) PrefersDark() (bool, error) {
	run := d.Run
	if run == nil {
		if _, err := exec.LookPath("defaults"); err != nil {
			return false, err
		}
		run = runDefaults
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		return false, fmt.Errorf("read AppleInterfaceStyle: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), nil
}

func runDefaults(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return nil, nil
	}
	return out, err
}

// TerminalDetector asks the terminal for its background color. The query
// talks to the tty, so it runs once and is cached; it must happen before a
// full-screen program takes over input.
type TerminalDetector struct {
	// Output defaults to termenv for stdout.
	Output *termenv.Output

	once sync.Once
	dark bool
	err  error
}

func (*TerminalDetector) Name() string { return "terminal" }

func (t *TerminalDetector) PrefersDark() (bool, error) {
	t.once.Do(func() {
		out := t.Output
		if out == nil {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				t.err = errors.New("stdout is not a terminal")
				return
			}
			out = termenv.NewOutput(os.Stdout)
		}
		t.dark = out.HasDarkBackground()
	})
	return t.dark, t.err
}

// Static always reports the same signal.
type Static bool

func (Static) Name() string { return "static" }

func (s Static) PrefersDark() (bool, error) { return bool(s), nil }
