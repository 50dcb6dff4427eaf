package main

import (
	"io"

	"agents/internal/content"
	"agents/internal/ui"

	"github.com/spf13/cobra"
)

func newUpdatesCmd(e *env, sess func() *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "updates",
		Short: "List or read organization updates",
	}

	var (
		category string
		query    string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List updates, optionally filtered by category and search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := content.ParseCategory(category)
			if err != nil {
				return err
			}
			updates := sess().site.Catalog().Filter(c, query)
			return ui.WriteUpdateList(e.out, updates, 0)
		},
	}
	list.Flags().StringVarP(&category, "category", "c", string(content.CategoryAll),
		"Category: all, projects, events, announcements or merchandise")
	list.Flags().StringVarP(&query, "query", "q", "", "Match title, description or tags")

	show := &cobra.Command{
		Use:   "show <slug>",
		Short: "Render one update with its related updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := sess()
			if _, err := s.site.Catalog().BySlug(args[0]); err != nil {
				return err
			}
			cfg := s.uiConfig()
			cfg.StartSlug = args[0]
			_, err := io.WriteString(e.out, ui.RenderStatic(cmd.Context(), cfg, 0)+"\n")
			return err
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
