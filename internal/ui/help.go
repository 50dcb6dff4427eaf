package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() to maintain single source of truth.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				{keys.Home.Help().Key, keys.Home.Help().Desc},
				{keys.Updates.Help().Key, keys.Updates.Help().Desc},
				{keys.Tab.Help().Key, keys.Tab.Help().Desc},
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Left.Help().Key, keys.Left.Help().Desc},
				{keys.PageUp.Help().Key, keys.PageUp.Help().Desc},
				{keys.PageDown.Help().Key, keys.PageDown.Help().Desc},
			},
		},
		{
			title: "UPDATES",
			rows: [][]string{
				{keys.Search.Help().Key, keys.Search.Help().Desc},
				{keys.FilterNext.Help().Key, keys.FilterNext.Help().Desc},
				{keys.ToggleView.Help().Key, keys.ToggleView.Help().Desc},
				{keys.ClearFilter.Help().Key, keys.ClearFilter.Help().Desc},
				{keys.Enter.Help().Key, keys.Enter.Help().Desc},
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.Back.Help().Key, keys.Back.Help().Desc},
			},
		},
		{
			title: "GENERAL",
			rows: [][]string{
				{keys.Theme.Help().Key, keys.Theme.Help().Desc},
				{keys.Help.Help().Key, keys.Help.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay creates the centered help modal.
func renderHelpOverlay(s Styles, keys KeyMap, width, height int) string {
	sections := getHelpSections(keys)

	leftCol := renderHelpSectionTable(s, sections[0])
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(s, sections[1]),
		"",
		renderHelpSectionTable(s, sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "    ", rightCol)

	title := s.Highlight.Render("✦ HELP ✦")
	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	divider := s.Muted.Render(strings.Repeat("─", dividerWidth))
	footer := s.Muted.Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		s.HelpBox.Render(content),
		lipgloss.WithWhitespaceChars(" "),
	)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(s Styles, section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return s.HelpKey.Width(14)
			}
			return s.HelpDesc
		}).
		Rows(section.rows...)

	header := s.HelpSection.Render(section.title)
	underline := s.Muted.Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
