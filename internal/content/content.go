// Package content holds the site copy and the updates catalog. The default
// data ships embedded; a YAML or TOML file can replace it.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "agents/internal/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// Organization names the group behind the site.
type Organization struct {
	Name       string `yaml:"name" toml:"name"`
	FullName   string `yaml:"full_name" toml:"full_name"`
	Office     string `yaml:"office" toml:"office"`
	Department string `yaml:"department" toml:"department"`
}

// Contact is shown in the footer.
type Contact struct {
	Phone string `yaml:"phone" toml:"phone"`
	Email string `yaml:"email" toml:"email"`
}

// SocialLink is an external profile listed in the footer.
type SocialLink struct {
	Platform string `yaml:"platform" toml:"platform"`
	URL      string `yaml:"url" toml:"url"`
}

// NavItem labels a header entry. Href selects the page it names.
type NavItem struct {
	Label string `yaml:"label" toml:"label"`
	Href  string `yaml:"href" toml:"href"`
}

// Heading is the split title used by every section: plain text followed by
// an accented highlight.
type Heading struct {
	Title          string `yaml:"title" toml:"title"`
	TitleHighlight string `yaml:"title_highlight" toml:"title_highlight"`
	Description    string `yaml:"description" toml:"description"`
}

// Hero is the home page banner.
type Hero struct {
	TitleHighlight string `yaml:"title_highlight" toml:"title_highlight"`
	TitleRest      string `yaml:"title_rest" toml:"title_rest"`
	Description    string `yaml:"description" toml:"description"`
	CTAText        string `yaml:"cta_text" toml:"cta_text"`
	CTALink        string `yaml:"cta_link" toml:"cta_link"`
}

// GroupPhoto is the caption block under the hero.
type GroupPhoto struct {
	Subtitle string   `yaml:"subtitle" toml:"subtitle"`
	Tagline  []string `yaml:"tagline" toml:"tagline"`
}

// Project is one past activity under the perspectives heading.
type Project struct {
	ID    string `yaml:"id" toml:"id"`
	Title string `yaml:"title" toml:"title"`
	Date  string `yaml:"date" toml:"date"`
}

// Feature is a numbered looking-ahead item.
type Feature struct {
	ID          string `yaml:"id" toml:"id"`
	Number      int    `yaml:"number" toml:"number"`
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
}

// Testimonial is one carousel slide.
type Testimonial struct {
	ID     string `yaml:"id" toml:"id"`
	Quote  string `yaml:"quote" toml:"quote"`
	Author string `yaml:"author" toml:"author"`
	Batch  string `yaml:"batch" toml:"batch"`
}

// CoreValue is a word whose leading Highlight letters are accented.
type CoreValue struct {
	Name      string `yaml:"name" toml:"name"`
	Highlight string `yaml:"highlight" toml:"highlight"`
}

// IskoOps is the recruitment card at the end of the home page.
type IskoOps struct {
	Title                string   `yaml:"title" toml:"title"`
	Subtitle             string   `yaml:"subtitle" toml:"subtitle"`
	Description          string   `yaml:"description" toml:"description"`
	Details              []string `yaml:"details" toml:"details"`
	Tagline              string   `yaml:"tagline" toml:"tagline"`
	CTA                  string   `yaml:"cta" toml:"cta"`
	RegistrationDeadline string   `yaml:"registration_deadline" toml:"registration_deadline"`
	RegistrationLink     string   `yaml:"registration_link" toml:"registration_link"`
}

// Site is every piece of copy the application renders.
type Site struct {
	Name         string       `yaml:"name" toml:"name"`
	Description  string       `yaml:"description" toml:"description"`
	BaseURL      string       `yaml:"base_url" toml:"base_url"`
	Organization Organization `yaml:"organization" toml:"organization"`
	Contact      Contact      `yaml:"contact" toml:"contact"`
	Social       []SocialLink `yaml:"social" toml:"social"`
	Nav          []NavItem    `yaml:"nav" toml:"nav"`

	Hero       Hero       `yaml:"hero" toml:"hero"`
	GroupPhoto GroupPhoto `yaml:"group_photo" toml:"group_photo"`

	Perspectives Heading   `yaml:"perspectives" toml:"perspectives"`
	Projects     []Project `yaml:"projects" toml:"projects"`

	LookingAhead Heading   `yaml:"looking_ahead" toml:"looking_ahead"`
	Features     []Feature `yaml:"features" toml:"features"`

	TestimonialsHeading Heading       `yaml:"testimonials_heading" toml:"testimonials_heading"`
	Testimonials        []Testimonial `yaml:"testimonials" toml:"testimonials"`

	CoreValuesHeading Heading     `yaml:"core_values_heading" toml:"core_values_heading"`
	CoreValues        []CoreValue `yaml:"core_values" toml:"core_values"`

	IskoOps IskoOps `yaml:"isko_ops" toml:"isko_ops"`

	UpdatesHeading Heading  `yaml:"updates_heading" toml:"updates_heading"`
	Updates        []Update `yaml:"updates" toml:"updates"`
	SampleDetail   *Update  `yaml:"sample_detail" toml:"sample_detail"`
}

// Catalog returns the updates catalog for s.
func (s *Site) Catalog() *Catalog {
	return NewCatalog(s.Updates, s.SampleDetail)
}

// Link returns the absolute address of an update page.
func (s *Site) Link(u Update) string {
	base := strings.TrimRight(s.BaseURL, "/")
	return base + "/updates/" + u.Slug
}

// Default returns the embedded sample site.
func Default() (*Site, error) {
	return parseYAML(sampleYAML, "embedded sample")
}

// LoadFile reads a site definition, choosing the decoder by extension.
func LoadFile(path string) (*Site, error) {
	//nolint:gosec // G304: content path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("read content %s", path), err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data, path)
	case ".toml":
		return parseTOML(data, path)
	}
	return nil, apperrors.New(apperrors.CodeParseFailed,
		fmt.Sprintf("content %s: unsupported format (want .yaml, .yml or .toml)", path), nil)
}

// Load returns LoadFile(path) when path is set and the embedded sample otherwise.
func Load(path string) (*Site, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

func parseYAML(data []byte, source string) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("parse %s", source), err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &site, nil
}

func parseTOML(data []byte, source string) (*Site, error) {
	var site Site
	if _, err := toml.Decode(string(data), &site); err != nil {
		return nil, apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("parse %s", source), err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &site, nil
}

// Validate checks the invariants the catalog relies on: every update has a
// unique slug and a concrete category.
func (s *Site) Validate() error {
	seen := make(map[string]struct{}, len(s.Updates))
	check := func(u Update) error {
		if strings.TrimSpace(u.Slug) == "" {
			return apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("update %q has no slug", u.Title), nil)
		}
		if !u.Category.Valid() || u.Category == CategoryAll {
			return apperrors.New(apperrors.CodeParseFailed,
				fmt.Sprintf("update %q has invalid category %q", u.Slug, u.Category), nil)
		}
		return nil
	}
	for _, u := range s.Updates {
		if err := check(u); err != nil {
			return err
		}
		if _, dup := seen[u.Slug]; dup {
			return apperrors.New(apperrors.CodeParseFailed, fmt.Sprintf("duplicate update slug %q", u.Slug), nil)
		}
		seen[u.Slug] = struct{}{}
	}
	if s.SampleDetail != nil {
		if err := check(*s.SampleDetail); err != nil {
			return err
		}
	}
	return nil
}
