package tagpages

import (
	"log/slog"
	"maps"
	"path"
	"time"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	"git.home.luguber.info/inful/tagbuilder/internal/foundation"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/logfields"
	"git.home.luguber.info/inful/tagbuilder/internal/metrics"
	"git.home.luguber.info/inful/tagbuilder/internal/paginate"
	"git.home.luguber.info/inful/tagbuilder/internal/slug"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// Builder computes tag output records from a configuration.
type Builder struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// Build runs aggregation, per-tag pages, the cloud, and pagination, in that
// order. Configuration and range errors abort the build; a missing template
// page only marks the result as degraded.
func (b *Builder) Build(site Site) (*Result, error) {
	start := time.Now()
	if b.cfg == nil {
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return nil, ferrors.ConfigError("config required").Build()
	}

	stageStart := time.Now()
	tags := taxonomy.Aggregate(site.Posts, b.cfg.Ignored())
	b.recorder.ObserveStageDuration("aggregate", time.Since(stageStart))
	b.recorder.SetTagCount(len(tags))
	slog.Debug("Aggregated tags", logfields.Stage("aggregate"), logfields.Count(len(tags)))

	result := &Result{Tags: tags}

	stageStart = time.Now()
	result.TagPages = b.tagPages(tags)
	b.recorder.ObserveStageDuration("tag_pages", time.Since(stageStart))

	stageStart = time.Now()
	result.Cloud = taxonomy.Cloud(tags, b.cfg.TagCloudBuckets)
	b.recorder.ObserveStageDuration("cloud", time.Since(stageStart))

	stageStart = time.Now()
	if err := b.paginate(site.Pages, tags, result); err != nil {
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return nil, err
	}
	b.recorder.ObserveStageDuration("paginate", time.Since(stageStart))

	outcome := metrics.BuildOutcomeSuccess
	if result.Degraded {
		outcome = metrics.BuildOutcomeDegraded
	}
	b.recorder.IncBuildOutcome(outcome)
	b.recorder.ObserveBuildDuration(time.Since(start))

	slog.Info("Tag pages built",
		logfields.Count(len(tags)),
		slog.Int("tag_pages", len(result.TagPages)),
		slog.Int("index_pages", len(result.IndexPages)),
		slog.Bool("degraded", result.Degraded),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return result, nil
}

// tagPages emits one record per tag and page type with a layout, tag-major.
func (b *Builder) tagPages(tags taxonomy.Associations) []TagPage {
	var types []config.PageType
	for _, t := range b.cfg.PageTypes() {
		if t.Layout != "" {
			types = append(types, t)
		}
	}

	pages := make([]TagPage, 0, len(tags)*len(types))
	counts := make(map[string]int, len(types))
	for _, a := range tags {
		for _, t := range types {
			p := b.newTagPage(t, a)
			slog.Debug("Tag page", logfields.Tag(a.Tag), logfields.PageType(t.Name), logfields.Path(p.Path))
			pages = append(pages, p)
			counts[t.Name]++
		}
	}
	for name, n := range counts {
		b.recorder.AddPagesGenerated(name, n)
	}
	return pages
}

func (b *Builder) newTagPage(t config.PageType, a taxonomy.Association) TagPage {
	loc := LocationFor(b.cfg, t, a.Tag)
	p := TagPage{
		Type:   t.Name,
		Tag:    a.Tag,
		Slug:   slug.Segment(a.Tag),
		Title:  a.Tag,
		Layout: t.Layout,
		Dir:    loc.Dir,
		Name:   loc.Name,
		Path:   path.Join(loc.Dir, loc.Name),
		URL:    loc.URL,
		Posts:  a.Posts,
	}

	p.Data = map[string]any{
		"layout": p.Layout,
		"posts":  p.Posts,
		"tag":    p.Tag,
		"title":  p.Title,
	}
	maps.Copy(p.Data, t.Data)
	return p
}

// paginate fills result.IndexPages when tags_paginate is set and a template
// page exists.
func (b *Builder) paginate(pages []paginate.Page, tags taxonomy.Associations, result *Result) error {
	perPage, ok := b.cfg.PerPage().Get()
	if !ok || len(pages) == 0 {
		return nil
	}

	tpl, found := paginate.FindTemplatePage(pages, b.cfg.Source, b.cfg.TagsPaginatePath).Get()
	if !found {
		warning := ferrors.DegradedFeature("tag pagination disabled: no template page").
			WithCause(ErrNoTemplatePage).
			WithContext("template", b.cfg.TagsPaginatePath).
			Build()
		result.Degraded = true
		result.Warnings = append(result.Warnings, warning)
		b.recorder.IncDegraded("no_template_page")
		slog.Warn("Tag pagination skipped: no index.html on the paginate path",
			logfields.Path(b.cfg.TagsPaginatePath))
		return nil
	}

	total, err := paginate.TotalPages(len(tags), perPage)
	if err != nil {
		return err
	}
	// An empty tag set still renders the template page as page 1 of 1.
	total = max(total, 1)

	result.IndexPages = make([]IndexPage, 0, total)
	for n := 1; n <= total; n++ {
		d, err := paginate.Build(paginate.Input{
			Tags:         tags,
			Page:         n,
			PerPage:      perPage,
			TotalPages:   foundation.Some(total),
			PathTemplate: b.cfg.TagsPaginatePath,
			FirstPageURL: foundation.Some(tpl.URL),
		})
		if err != nil {
			return err
		}

		ip := IndexPage{Template: tpl, Pager: d}
		if n == 1 {
			ip.Reused = true
			ip.Dir = tpl.Dir
			ip.Path = tpl.Path
			ip.URL = tpl.URL
		} else {
			dir, err := paginate.ResolvePath(b.cfg.TagsPaginatePath, n, tpl.URL)
			if err != nil {
				return err
			}
			ip.Dir = dir
			ip.Path = path.Join(paginate.RemoveLeadingSlash(dir), tpl.Name)
			ip.URL = dir
		}
		slog.Debug("Tag index page", logfields.Page(n), logfields.TotalPages(total), logfields.Path(ip.Path))
		result.IndexPages = append(result.IndexPages, ip)
	}
	b.recorder.AddPagesGenerated(metrics.PageKindIndex, total-1)
	return nil
}
