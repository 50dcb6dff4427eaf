package main

import (
	"context"
	"io"
	"os"

	"agents/internal/appearance"
	"agents/internal/config"
	"agents/internal/content"
	"agents/internal/debug"
	apperrors "agents/internal/errors"
	"agents/internal/prefs"
	"agents/internal/theme"
	"agents/internal/ui"
	"agents/internal/ui/palette"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds the process-level collaborators, replaceable in tests.
type env struct {
	out        io.Writer
	errOut     io.Writer
	isTerminal func() bool
	detector   appearance.Detector
	newProgram programFactory
	configOpts []config.Option
}

func defaultEnv() *env {
	return &env{
		out:    os.Stdout,
		errOut: os.Stderr,
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		detector:   appearance.Default(),
		newProgram: newTeaProgram,
	}
}

// session is everything a command needs once configuration is loaded.
type session struct {
	kv       prefs.KV
	slot     prefs.Slot
	resolver *theme.Resolver
	site     *content.Site
	palette  palette.Palette
}

type rootFlags struct {
	debug   bool
	storage string
	content string
}

func newRootCmd(e *env) *cobra.Command {
	var (
		flags rootFlags
		sess  *session
	)

	root := &cobra.Command{
		Use:           "agents",
		Short:         "Browse the AGENTS site and updates in the terminal",
		Long:          "Browse the AGENTS organization site, its updates catalog and individual articles with a light, dark or system theme.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, e, flags)
			if err != nil {
				return err
			}
			sess = s
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if sess != nil {
				if err := sess.kv.Close(); err != nil {
					debug.L().Warn("close preference store", zap.Error(err))
				}
			}
			debug.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := sess.uiConfig()
			if !e.isTerminal() {
				_, err := io.WriteString(e.out, ui.RenderStatic(cmd.Context(), cfg, 0)+"\n")
				return err
			}
			return runTUI(cmd.Context(), e, cfg)
		},
	}
	root.SetVersionTemplate(versionString() + "\n")
	root.SetOut(e.out)
	root.SetErr(e.errOut)

	pf := root.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "Write a debug log to ~/.agents/debug.log")
	pf.StringVar(&flags.storage, "storage", "", "Preference storage: config, sqlite or memory")
	pf.StringVar(&flags.content, "content", "", "Load site content from a YAML or TOML file")

	current := func() *session { return sess }
	root.AddCommand(newThemeCmd(e, current), newUpdatesCmd(e, current))
	return root
}

// openSession loads configuration, applies flag overrides and wires the
// preference store, resolver and content.
func openSession(cmd *cobra.Command, e *env, flags rootFlags) (*session, error) {
	if err := config.Initialize(e.configOpts...); err != nil {
		return nil, err
	}
	overrides := map[string]any{}
	if cmd.Flags().Changed("debug") {
		overrides[config.KeyDebug] = flags.debug
	}
	if cmd.Flags().Changed("storage") {
		overrides[config.KeyThemeStorage] = flags.storage
	}
	if cmd.Flags().Changed("content") {
		overrides[config.KeyContentPath] = flags.content
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	kv, err := prefs.Open(ctx, config.GetString(config.KeyThemeStorage), config.GetString(config.KeyThemePath))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeConfigurationError) {
			return nil, err
		}
		// The theme still works for this run; it just is not remembered.
		debug.L().Warn("preference storage unavailable", zap.Error(err))
		kv = prefs.Unavailable{Reason: err}
	}

	site, err := content.Load(config.GetString(config.KeyContentPath))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	pal, ok := palette.NewRegistry().Get(config.GetString(config.KeyPalette))
	if !ok {
		debug.L().Warn("unknown palette, using default", zap.String("palette", config.GetString(config.KeyPalette)))
	}

	slot := prefs.NewSlot(kv, theme.StorageKey)
	resolver := theme.NewResolver(slot,
		theme.WithDetector(e.detector),
		theme.WithApplier(palette.Applier),
		theme.WithLogger(debug.L()),
	)
	return &session{kv: kv, slot: slot, resolver: resolver, site: site, palette: pal}, nil
}

func (s *session) uiConfig() ui.Config {
	return ui.Config{
		Site:                s.site,
		Resolver:            s.resolver,
		Palette:             s.palette,
		CarouselInterval:    config.GetDuration(config.KeyCarouselInterval),
		CarouselResumeAfter: config.GetDuration(config.KeyCarouselResumeAfter),
		Version:             Version,
	}
}
