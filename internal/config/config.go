package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/tagbuilder/internal/foundation"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/util/sets"
)

// Config is the site configuration the tag page build reads. Keys follow the
// Jekyll tagging conventions so existing _config.yml files keep working.
type Config struct {
	Source     string `yaml:"source"`
	ContentDir string `yaml:"content_dir"`
	BaseURL    string `yaml:"baseurl"`

	Permalink         string `yaml:"permalink,omitempty"`
	TagPermalinkStyle string `yaml:"tag_permalink_style,omitempty"`
	// LayoutExt is the output extension of layouts not listed in Layouts.
	LayoutExt string `yaml:"layout_ext"`
	// Layouts maps a layout name to its output extension.
	Layouts map[string]string `yaml:"layouts,omitempty"`

	IgnoredTags []string `yaml:"ignored_tags,omitempty"`

	TagPageLayout string         `yaml:"tag_page_layout,omitempty"`
	TagPageDir    string         `yaml:"tag_page_dir"`
	TagPageData   map[string]any `yaml:"tag_page_data,omitempty"`
	TagFeedLayout string         `yaml:"tag_feed_layout,omitempty"`
	TagFeedDir    string         `yaml:"tag_feed_dir"`
	TagFeedData   map[string]any `yaml:"tag_feed_data,omitempty"`

	// TagsPaginate is the tag index page size; nil disables pagination.
	TagsPaginate     *int   `yaml:"tags_paginate,omitempty"`
	TagsPaginatePath string `yaml:"tags_paginate_path"`

	TagCloudBuckets int `yaml:"tag_cloud_buckets"`
}

// PageType describes one kind of per-tag page (the tag listing, its feed).
type PageType struct {
	Name   string
	Layout string
	Dir    string
	Data   map[string]any
}

// Page type names.
const (
	PageTypePage = "page"
	PageTypeFeed = "feed"
)

// PageTypes lists the per-tag page kinds in generation order.
func (c *Config) PageTypes() []PageType {
	return []PageType{
		{Name: PageTypePage, Layout: c.TagPageLayout, Dir: c.TagPageDir, Data: c.TagPageData},
		{Name: PageTypeFeed, Layout: c.TagFeedLayout, Dir: c.TagFeedDir, Data: c.TagFeedData},
	}
}

// PageType returns the page type called name.
func (c *Config) PageType(name string) (PageType, bool) {
	i := slices.IndexFunc(c.PageTypes(), func(t PageType) bool { return t.Name == name })
	if i < 0 {
		return PageType{}, false
	}
	return c.PageTypes()[i], true
}

// PermalinkStyle selects how output paths are shaped.
type PermalinkStyle string

const (
	PermalinkDate   PermalinkStyle = "date"
	PermalinkPretty PermalinkStyle = "pretty"
	PermalinkNone   PermalinkStyle = "none"
)

var permalinkStyles = foundation.NewNormalizer(map[string]PermalinkStyle{
	"date":   PermalinkDate,
	"pretty": PermalinkPretty,
	"none":   PermalinkNone,
}, PermalinkDate)

// Pretty reports whether tag pages are written as <dir>/<slug>/index<ext>.
func (c *Config) Pretty() bool {
	return permalinkStyles.Normalize(c.Permalink) == PermalinkPretty ||
		permalinkStyles.Normalize(c.TagPermalinkStyle) == PermalinkPretty
}

// PostPermalink returns the permalink style used for post URLs.
func (c *Config) PostPermalink() PermalinkStyle {
	return permalinkStyles.Normalize(c.Permalink)
}

// PostsDir returns the content directory, joined to Source when relative.
func (c *Config) PostsDir() string {
	if filepath.IsAbs(c.ContentDir) {
		return c.ContentDir
	}
	return filepath.Join(c.Source, c.ContentDir)
}

// ExtFor returns the output extension of layout.
func (c *Config) ExtFor(layout string) string {
	if ext, ok := c.Layouts[layout]; ok && ext != "" {
		return ext
	}
	return c.LayoutExt
}

// Ignored returns the ignore list as a set.
func (c *Config) Ignored() sets.Set[string] {
	return sets.New(c.IgnoredTags...)
}

// PerPage returns the tag index page size, None when pagination is off.
func (c *Config) PerPage() foundation.Option[int] {
	return foundation.FromPointer(c.TagsPaginate)
}

// Hash returns a stable digest of the effective configuration.
func (c *Config) Hash() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config for hash: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), nil
}

// Load reads the configuration file, expanding ${VAR} references from the
// environment and any .env/.env.local file, then applies defaults and validates.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				WithCause(err).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads .env then .env.local without overriding variables that
// are already set. Missing files are fine.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", envPath, err)
		}
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	perPage := 20
	example := Config{
		Source:            ".",
		ContentDir:        "_posts",
		BaseURL:           "",
		TagPermalinkStyle: string(PermalinkPretty),
		LayoutExt:         ".html",
		Layouts:           map[string]string{"tag_feed": ".xml"},
		IgnoredTags:       []string{"draft"},
		TagPageLayout:     "tag_page",
		TagPageDir:        "tag",
		TagFeedLayout:     "tag_feed",
		TagFeedDir:        "tag",
		TagsPaginate:      &perPage,
		TagsPaginatePath:  "/tags/page:num:/",
		TagCloudBuckets:   5,
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- configuration is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
