package content

import (
	"fmt"
	"strings"

	apperrors "agents/internal/errors"
)

// Category groups updates on the listing page.
type Category string

const (
	CategoryAll           Category = "all"
	CategoryProjects      Category = "projects"
	CategoryEvents        Category = "events"
	CategoryAnnouncements Category = "announcements"
	CategoryMerchandise   Category = "merchandise"
)

// Categories lists the filters in display order, all first.
var Categories = []Category{
	CategoryAll,
	CategoryProjects,
	CategoryEvents,
	CategoryAnnouncements,
	CategoryMerchandise,
}

var categoryLabels = map[Category]string{
	CategoryAll:           "All",
	CategoryProjects:      "Projects",
	CategoryEvents:        "Events",
	CategoryAnnouncements: "Announcements",
	CategoryMerchandise:   "Merchandise",
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label is the button text for c.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts a category name case-insensitively; empty means all.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return CategoryAll, nil
	}
	c := Category(trimmed)
	if !c.Valid() {
		return "", apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("unknown category %q", s), nil)
	}
	return c, nil
}

type Author struct {
	Name string `yaml:"name" toml:"name"`
	Role string `yaml:"role" toml:"role"`
}

// Update is one article on the updates page.
type Update struct {
	ID           string   `yaml:"id" toml:"id"`
	Slug         string   `yaml:"slug" toml:"slug"`
	Title        string   `yaml:"title" toml:"title"`
	Description  string   `yaml:"description" toml:"description"`
	Content      []string `yaml:"content" toml:"content"`
	Category     Category `yaml:"category" toml:"category"`
	Date         string   `yaml:"date" toml:"date"`
	AcademicYear string   `yaml:"academic_year" toml:"academic_year"`
	Tags         []string `yaml:"tags" toml:"tags"`
	Authors      []Author `yaml:"authors" toml:"authors"`
	Featured     bool     `yaml:"featured" toml:"featured"`
}

// Markdown renders the article body for the detail view.
func (u Update) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", u.Title)
	if u.Description != "" {
		fmt.Fprintf(&b, "_%s_\n\n", u.Description)
	}
	for _, p := range u.Content {
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	if len(u.Authors) > 0 {
		b.WriteString("---\n\n")
		for _, a := range u.Authors {
			if a.Role != "" {
				fmt.Fprintf(&b, "- **%s**, %s\n", a.Name, a.Role)
			} else {
				fmt.Fprintf(&b, "- **%s**\n", a.Name)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func (u Update) matches(query string) bool {
	if strings.Contains(strings.ToLower(u.Title), query) ||
		strings.Contains(strings.ToLower(u.Description), query) {
		return true
	}
	for _, tag := range u.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// ErrUpdateNotFound is returned by BySlug for unknown slugs.
var ErrUpdateNotFound = apperrors.New(apperrors.CodeNotFound, "update not found", nil)

// FilterOption is a category button with the number of updates it shows.
type FilterOption struct {
	Label    string
	Category Category
	Count    int
}

// Catalog answers listing and lookup queries over a fixed set of updates.
type Catalog struct {
	updates  []Update
	fallback *Update
}

// NewCatalog wraps updates. fallback, when non-nil, is served by BySlug for
// its own slug even though it is not listed.
func NewCatalog(updates []Update, fallback *Update) *Catalog {
	return &Catalog{updates: updates, fallback: fallback}
}

// All returns every listed update in catalog order.
func (c *Catalog) All() []Update {
	out := make([]Update, len(c.updates))
	copy(out, c.updates)
	return out
}

// Len is the number of listed updates.
func (c *Catalog) Len() int { return len(c.updates) }

// Filter keeps updates in category (all keeps everything) whose title,
// description or tags contain query, ignoring case. A blank query matches all.
func (c *Catalog) Filter(category Category, query string) []Update {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Update, 0, len(c.updates))
	for _, u := range c.updates {
		if category != CategoryAll && u.Category != category {
			continue
		}
		if q != "" && !u.matches(q) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// FilterOptions returns one option per category with its count.
func (c *Catalog) FilterOptions() []FilterOption {
	counts := make(map[Category]int, len(Categories))
	for _, u := range c.updates {
		counts[u.Category]++
	}
	opts := make([]FilterOption, 0, len(Categories))
	for _, cat := range Categories {
		n := counts[cat]
		if cat == CategoryAll {
			n = len(c.updates)
		}
		opts = append(opts, FilterOption{Label: cat.Label(), Category: cat, Count: n})
	}
	return opts
}

// BySlug finds a listed update, then the fallback detail entry.
func (c *Catalog) BySlug(slug string) (Update, error) {
	for _, u := range c.updates {
		if u.Slug == slug {
			return u, nil
		}
	}
	if c.fallback != nil && c.fallback.Slug == slug {
		return *c.fallback, nil
	}
	return Update{}, fmt.Errorf("%q: %w", slug, ErrUpdateNotFound)
}

// Related returns up to n other updates sharing slug's category.
func (c *Catalog) Related(slug string, n int) []Update {
	if n <= 0 {
		return nil
	}
	current, err := c.BySlug(slug)
	if err != nil {
		return nil
	}
	var out []Update
	for _, u := range c.updates {
		if u.Slug == slug || u.Category != current.Category {
			continue
		}
		out = append(out, u)
		if len(out) == n {
			break
		}
	}
	return out
}
