package paginate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tagbuilder/internal/foundation"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

func tagTable(n int) taxonomy.Associations {
	out := make(taxonomy.Associations, n)
	for i := range out {
		tag := fmt.Sprintf("tag%02d", i)
		out[i] = taxonomy.Association{
			Tag:   tag,
			Posts: []taxonomy.Post{{ID: tag + ".md", Date: time.Unix(int64(i), 0)}},
		}
	}
	return out
}

func buildAll(t *testing.T, tags taxonomy.Associations, perPage int) []*PageDescriptor {
	t.Helper()
	total, err := TotalPages(len(tags), perPage)
	require.NoError(t, err)

	out := make([]*PageDescriptor, 0, total)
	for page := 1; page <= total; page++ {
		d, err := Build(Input{
			Tags:         tags,
			Page:         page,
			PerPage:      perPage,
			PathTemplate: "/tags/page:num:/",
			FirstPageURL: foundation.Some("/tags/"),
		})
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func TestBuild_TwelveTagsFivePerPage(t *testing.T) {
	pages := buildAll(t, tagTable(12), 5)
	require.Len(t, pages, 3)

	first := pages[0]
	assert.Equal(t, 1, first.Page)
	assert.Len(t, first.Tags, 5)
	assert.Equal(t, 12, first.TotalTags)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.PreviousPage.IsNone())
	assert.True(t, first.PreviousPagePath.IsNone())
	assert.Equal(t, foundation.Some(2), first.NextPage)
	assert.Equal(t, foundation.Some("/tags/page2/"), first.NextPagePath)

	second := pages[1]
	assert.Len(t, second.Tags, 5)
	assert.Equal(t, foundation.Some(1), second.PreviousPage)
	assert.Equal(t, foundation.Some("/tags/"), second.PreviousPagePath, "page 1 is the template page URL")
	assert.Equal(t, foundation.Some("/tags/page3/"), second.NextPagePath)

	last := pages[2]
	assert.Len(t, last.Tags, 2)
	assert.Equal(t, "tag10", last.Tags[0].Tag)
	assert.True(t, last.NextPage.IsNone())
	assert.True(t, last.NextPagePath.IsNone())
	assert.Equal(t, foundation.Some("/tags/page2/"), last.PreviousPagePath)
}

func TestBuild_ExactMultiple(t *testing.T) {
	pages := buildAll(t, tagTable(10), 5)
	require.Len(t, pages, 2)
	assert.True(t, pages[1].NextPage.IsNone())
	assert.Len(t, pages[1].Tags, 5)
}

func TestBuild_LinksChainAcrossSeries(t *testing.T) {
	for _, n := range []int{1, 2, 7, 20, 21} {
		pages := buildAll(t, tagTable(n), 3)
		for k := 0; k < len(pages)-1; k++ {
			assert.Equal(t, pages[k+1].Page, pages[k].NextPage.Unwrap())
			assert.Equal(t, pages[k].Page, pages[k+1].PreviousPage.Unwrap())
		}
		assert.True(t, pages[0].PreviousPage.IsNone())
		assert.True(t, pages[len(pages)-1].NextPage.IsNone())

		seen := 0
		for _, p := range pages {
			seen += len(p.Tags)
		}
		assert.Equal(t, n, seen)
	}
}

func TestBuild_PageBeyondTotal(t *testing.T) {
	_, err := Build(Input{Tags: tagTable(12), Page: 4, PerPage: 5, PathTemplate: "/tags/page:num:/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPageOutOfRange))
	assert.Contains(t, err.Error(), "4")
	assert.Contains(t, err.Error(), "3")

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	page, _ := classified.Context().GetInt("page")
	total, _ := classified.Context().GetInt("total_pages")
	assert.Equal(t, 4, page)
	assert.Equal(t, 3, total)
}

func TestBuild_PageBelowOne(t *testing.T) {
	_, err := Build(Input{Tags: tagTable(3), Page: 0, PerPage: 5})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRange))
}

func TestBuild_InvalidPerPage(t *testing.T) {
	_, err := Build(Input{Tags: tagTable(3), Page: 1, PerPage: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPerPage))
}

func TestBuild_TotalPagesOverride(t *testing.T) {
	d, err := Build(Input{
		Tags:         nil,
		Page:         1,
		PerPage:      5,
		TotalPages:   foundation.Some(1),
		PathTemplate: "/tags/page:num:/",
		FirstPageURL: foundation.Some("/tags/"),
	})
	require.NoError(t, err)
	assert.Empty(t, d.Tags)
	assert.Equal(t, 1, d.TotalPages)
	assert.True(t, d.NextPage.IsNone())
}

func TestBuild_WithoutFirstPageURL(t *testing.T) {
	d, err := Build(Input{Tags: tagTable(6), Page: 2, PerPage: 5, PathTemplate: "/tags/page:num:/"})
	require.NoError(t, err)
	assert.Equal(t, foundation.Some(1), d.PreviousPage)
	assert.True(t, d.PreviousPagePath.IsNone())
}

func TestBuild_MissingPlaceholderFailsWhenNeeded(t *testing.T) {
	_, err := Build(Input{Tags: tagTable(6), Page: 1, PerPage: 5, PathTemplate: "/tags/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPlaceholder))

	_, err = Build(Input{Tags: tagTable(3), Page: 1, PerPage: 5, PathTemplate: "/tags/"})
	require.NoError(t, err, "a single page never resolves the template")
}

func TestBuild_SliceDoesNotAliasForAppend(t *testing.T) {
	tags := tagTable(6)
	d, err := Build(Input{Tags: tags, Page: 1, PerPage: 3, PathTemplate: "/p:num:/"})
	require.NoError(t, err)

	_ = append(d.Tags, taxonomy.Association{Tag: "zzz"})
	assert.Equal(t, "tag03", tags[3].Tag)
}

func TestPageDescriptor_Data(t *testing.T) {
	pages := buildAll(t, tagTable(7), 5)
	data := pages[0].Data()

	assert.Equal(t, 1, data["page"])
	assert.Equal(t, 5, data["per_page"])
	assert.Equal(t, 7, data["total_tags"])
	assert.Equal(t, 2, data["total_pages"])
	assert.Nil(t, data["previous_page"])
	assert.Nil(t, data["previous_page_path"])
	assert.Equal(t, 2, data["next_page"])
	assert.Equal(t, "/tags/page2/", data["next_page_path"])
}
