package config

import (
	"strings"

	"git.home.luguber.info/inful/tagbuilder/internal/quantile"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles source, content and layout defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source == "" {
		cfg.Source = "."
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = "_posts"
	}
	if cfg.LayoutExt == "" {
		cfg.LayoutExt = ".html"
	}
	if !strings.HasPrefix(cfg.LayoutExt, ".") {
		cfg.LayoutExt = "." + cfg.LayoutExt
	}
	return nil
}

// TagPagesDefaultApplier handles per-tag page and cloud defaults.
type TagPagesDefaultApplier struct{}

func (TagPagesDefaultApplier) Domain() string { return "tag_pages" }

func (TagPagesDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.TagPageDir == "" {
		cfg.TagPageDir = "tag"
	}
	if cfg.TagFeedDir == "" {
		cfg.TagFeedDir = cfg.TagPageDir
	}
	if cfg.TagCloudBuckets == 0 {
		cfg.TagCloudBuckets = quantile.DefaultBuckets
	}
	return nil
}

// PaginationDefaultApplier handles tag index pagination defaults.
type PaginationDefaultApplier struct{}

func (PaginationDefaultApplier) Domain() string { return "pagination" }

func (PaginationDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.TagsPaginatePath == "" {
		cfg.TagsPaginatePath = "/tags/page:num:/"
	}
	return nil
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		SiteDefaultApplier{},
		TagPagesDefaultApplier{},
		PaginationDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
