package tagpages

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/metrics"
	"git.home.luguber.info/inful/tagbuilder/internal/paginate"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

func mustConfig(t *testing.T, yml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(yml))
	require.NoError(t, err)
	return cfg
}

func post(id string, day int, tags ...string) taxonomy.Post {
	return taxonomy.Post{
		ID:   id,
		Date: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Tags: tags,
	}
}

// distinctTags returns n posts, each with its own tag t00..t<n-1>.
func distinctTags(n int) []taxonomy.Post {
	posts := make([]taxonomy.Post, n)
	for i := range posts {
		posts[i] = post(fmt.Sprintf("p%02d", i), i%28+1, fmt.Sprintf("t%02d", i))
	}
	return posts
}

var sitePages = []paginate.Page{
	{Name: "index.html", Dir: "/", Path: "index.html", URL: "/"},
	{Name: "index.html", Dir: "/tags", Path: "tags/index.html", URL: "/tags/"},
	{Name: "about.html", Dir: "/", Path: "about.html", URL: "/about.html"},
}

type countingRecorder struct {
	metrics.NoopRecorder
	pages    map[string]int
	degraded int
	outcome  metrics.BuildOutcomeLabel
}

func (c *countingRecorder) AddPagesGenerated(kind string, n int) { c.pages[kind] += n }
func (c *countingRecorder) IncDegraded(string)                   { c.degraded++ }
func (c *countingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	c.outcome = o
}

func TestBuild_TagPagesPerType(t *testing.T) {
	cfg := mustConfig(t, `
layouts: {tag_feed: .xml}
ignored_tags: [draft]
tag_page_layout: tag_page
tag_page_dir: tag
tag_page_data: {robots: noindex, title: Override}
tag_feed_layout: tag_feed
`)
	res, err := NewBuilder(cfg).Build(Site{Posts: []taxonomy.Post{
		post("a", 1, "Go", "draft"),
		post("b", 2, "Go", "Web Dev"),
	}})
	require.NoError(t, err)

	require.Len(t, res.TagPages, 4)
	assert.Equal(t, []string{"Go", "Go", "Web Dev", "Web Dev"},
		[]string{res.TagPages[0].Tag, res.TagPages[1].Tag, res.TagPages[2].Tag, res.TagPages[3].Tag})

	page := res.TagPages[0]
	assert.Equal(t, config.PageTypePage, page.Type)
	assert.Equal(t, "tag/go.html", page.Path)
	assert.Equal(t, "/tag/go.html", page.URL)
	assert.Equal(t, "tag_page", page.Data["layout"])
	assert.Equal(t, "Go", page.Data["tag"])
	assert.Equal(t, "noindex", page.Data["robots"])
	assert.Equal(t, "Override", page.Data["title"], "configured data wins over defaults")
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "b", page.Posts[0].ID, "newest post first")

	feed := res.TagPages[1]
	assert.Equal(t, config.PageTypeFeed, feed.Type)
	assert.Equal(t, "tag/go.xml", feed.Path)

	assert.Equal(t, "tag/web-dev.html", res.TagPages[2].Path)
	assert.Len(t, res.PagesOfType(config.PageTypeFeed), 2)
	assert.NotContains(t, res.Tags.Tags(), "draft")
}

func TestBuild_PrettyURLs(t *testing.T) {
	cfg := mustConfig(t, `
permalink: pretty
tag_page_layout: tag_page
tag_page_dir: /tags/
`)
	res, err := NewBuilder(cfg).Build(Site{Posts: []taxonomy.Post{post("a", 1, "Café Culture")}})
	require.NoError(t, err)

	require.Len(t, res.TagPages, 1, "feed has no layout and is skipped")
	p := res.TagPages[0]
	assert.Equal(t, "tags/cafe-culture", p.Dir)
	assert.Equal(t, "index.html", p.Name)
	assert.Equal(t, "tags/cafe-culture/index.html", p.Path)
	assert.Equal(t, "/tags/cafe-culture/", p.URL)
}

func TestBuild_Cloud(t *testing.T) {
	cfg := mustConfig(t, "tag_page_layout: tag_page\n")
	var posts []taxonomy.Post
	for i := range 10 {
		posts = append(posts, post(fmt.Sprintf("big%d", i), 1, "big"))
	}
	posts = append(posts, post("x", 1, "a"), post("y", 1, "b"), post("z", 1, "c"))

	res, err := NewBuilder(cfg).Build(Site{Posts: posts})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "big": 5}, res.CloudMap())
	assert.Equal(t, "a", res.Cloud[0].Tag)
}

func TestBuild_Pagination(t *testing.T) {
	cfg := mustConfig(t, `
tag_page_layout: tag_page
tags_paginate: 5
tags_paginate_path: /tags/page:num:/
`)
	rec := &countingRecorder{pages: map[string]int{}}
	res, err := NewBuilder(cfg).WithRecorder(rec).Build(Site{Posts: distinctTags(12), Pages: sitePages})
	require.NoError(t, err)
	require.False(t, res.Degraded)
	require.Len(t, res.IndexPages, 3)

	first := res.IndexPages[0]
	assert.True(t, first.Reused)
	assert.Equal(t, "tags/index.html", first.Path)
	assert.Equal(t, "/tags/", first.URL)
	assert.Len(t, first.Pager.Tags, 5)
	assert.True(t, first.Pager.PreviousPage.IsNone())
	assert.Equal(t, "/tags/page2/", first.Pager.NextPagePath.Unwrap())

	second := res.IndexPages[1]
	assert.False(t, second.Reused)
	assert.Equal(t, "/tags/page2/", second.Dir)
	assert.Equal(t, "tags/page2/index.html", second.Path)
	assert.Equal(t, "/tags/", second.Pager.PreviousPagePath.Unwrap())

	last := res.IndexPages[2]
	assert.Len(t, last.Pager.Tags, 2)
	assert.True(t, last.Pager.NextPage.IsNone())
	assert.Equal(t, "t10", last.Pager.Tags[0].Tag)

	for k := 0; k < len(res.IndexPages)-1; k++ {
		assert.Equal(t, res.IndexPages[k+1].Pager.Page, res.IndexPages[k].Pager.NextPage.Unwrap())
	}

	assert.Equal(t, 12, rec.pages[config.PageTypePage])
	assert.Equal(t, 2, rec.pages[metrics.PageKindIndex])
	assert.Equal(t, metrics.BuildOutcomeSuccess, rec.outcome)
}

func TestBuild_PaginationExactMultiple(t *testing.T) {
	cfg := mustConfig(t, "tags_paginate: 5\n")
	res, err := NewBuilder(cfg).Build(Site{Posts: distinctTags(10), Pages: sitePages})
	require.NoError(t, err)
	assert.Len(t, res.IndexPages, 2)
}

func TestBuild_PaginationEmptyTagSet(t *testing.T) {
	cfg := mustConfig(t, "tags_paginate: 5\n")
	res, err := NewBuilder(cfg).Build(Site{Pages: sitePages})
	require.NoError(t, err)

	require.Len(t, res.IndexPages, 1)
	assert.Empty(t, res.IndexPages[0].Pager.Tags)
	assert.Equal(t, 1, res.IndexPages[0].Pager.TotalPages)
	assert.Empty(t, res.TagPages)
	assert.Empty(t, res.Cloud)
}

func TestBuild_PaginationDisabled(t *testing.T) {
	t.Run("no page size", func(t *testing.T) {
		res, err := NewBuilder(mustConfig(t, "{}")).Build(Site{Posts: distinctTags(3), Pages: sitePages})
		require.NoError(t, err)
		assert.Empty(t, res.IndexPages)
		assert.False(t, res.Degraded)
	})

	t.Run("no existing pages", func(t *testing.T) {
		res, err := NewBuilder(mustConfig(t, "tags_paginate: 2\n")).Build(Site{Posts: distinctTags(3)})
		require.NoError(t, err)
		assert.Empty(t, res.IndexPages)
		assert.False(t, res.Degraded)
	})
}

func TestBuild_NoTemplatePageDegrades(t *testing.T) {
	cfg := mustConfig(t, `
tag_page_layout: tag_page
tags_paginate: 2
tags_paginate_path: /tags/page:num:/
`)
	rec := &countingRecorder{pages: map[string]int{}}
	pages := []paginate.Page{{Name: "about.html", Dir: "/", Path: "about.html", URL: "/about.html"}}

	res, err := NewBuilder(cfg).WithRecorder(rec).Build(Site{Posts: distinctTags(3), Pages: pages})
	require.NoError(t, err)

	assert.True(t, res.Degraded)
	assert.Empty(t, res.IndexPages)
	assert.Len(t, res.TagPages, 3, "tag pages still render")
	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.Is(res.Warnings[0], ErrNoTemplatePage))
	assert.True(t, ferrors.HasCategory(res.Warnings[0], ferrors.CategoryDegraded))
	assert.Equal(t, 1, rec.degraded)
	assert.Equal(t, metrics.BuildOutcomeDegraded, rec.outcome)
}

func TestBuild_NilConfig(t *testing.T) {
	_, err := NewBuilder(nil).Build(Site{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestBuild_InvalidPageSize(t *testing.T) {
	zero := 0
	cfg := mustConfig(t, "{}")
	cfg.TagsPaginate = &zero

	_, err := NewBuilder(cfg).Build(Site{Posts: distinctTags(1), Pages: sitePages})
	require.Error(t, err)
	assert.True(t, errors.Is(err, paginate.ErrInvalidPerPage))
}
