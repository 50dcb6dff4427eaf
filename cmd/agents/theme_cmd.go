package main

import (
	"fmt"

	apperrors "agents/internal/errors"
	"agents/internal/theme"

	"github.com/spf13/cobra"
)

func newThemeCmd(e *env, sess func() *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the theme preference",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored preference and the theme it resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := sess().resolver
			r.Initialize(cmd.Context())
			st := r.State()
			_, err := fmt.Fprintf(e.out, "%s (%s)\n", st.Preference, st.Resolved)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Store a theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sess()
			p, ok := theme.ParsePreference(args[0])
			if !ok {
				return apperrors.New(apperrors.CodeInvalidPreference,
					fmt.Sprintf("invalid theme %q (want light, dark or system)", args[0]), nil)
			}
			ctx := cmd.Context()
			s.resolver.Initialize(ctx)
			if err := s.resolver.SetTheme(ctx, p); err != nil {
				return err
			}
			// SetTheme only logs persistence failures; the CLI has nothing
			// else to show, so report them.
			if stored, err := s.slot.Load(ctx); err != nil || stored != p.String() {
				return apperrors.New(apperrors.CodeStorageUnavailable, "theme preference was not saved", err)
			}
			_, err := fmt.Fprintf(e.out, "%s (%s)\n", p, s.resolver.Resolved())
			return err
		},
	})
	return cmd
}
