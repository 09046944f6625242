package taxonomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tagbuilder/internal/util/sets"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}

func ids(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestAggregate_GroupsAndSortsByTag(t *testing.T) {
	posts := []Post{
		{ID: "a", Date: day(1), Tags: []string{"go", "web"}},
		{ID: "b", Date: day(3), Tags: []string{"go"}},
		{ID: "c", Date: day(2), Tags: []string{"rust", "go"}},
	}

	got := Aggregate(posts, nil)

	require.Equal(t, []string{"go", "rust", "web"}, got.Tags())
	assert.Equal(t, []string{"b", "c", "a"}, ids(got.Posts("go")))
	assert.Equal(t, []string{"c"}, ids(got.Posts("rust")))
	assert.Equal(t, []string{"a"}, ids(got.Posts("web")))
	assert.Nil(t, got.Posts("missing"))
}

func TestAggregate_TiesKeepInputOrder(t *testing.T) {
	posts := []Post{
		{ID: "first", Date: day(5), Tags: []string{"go"}},
		{ID: "second", Date: day(5), Tags: []string{"go"}},
		{ID: "newest", Date: day(6), Tags: []string{"go"}},
		{ID: "third", Date: day(5), Tags: []string{"go"}},
	}

	got := Aggregate(posts, nil)
	assert.Equal(t, []string{"newest", "first", "second", "third"}, ids(got.Posts("go")))
}

func TestAggregate_IgnoredTagsNeverMaterialize(t *testing.T) {
	posts := []Post{
		{ID: "a", Date: day(1), Tags: []string{"draft"}},
		{ID: "b", Date: day(2), Tags: []string{"draft", "go"}},
	}

	got := Aggregate(posts, sets.New("draft"))
	assert.Equal(t, []string{"go"}, got.Tags())
	for _, a := range got {
		assert.NotEmpty(t, a.Posts)
	}
}

func TestAggregate_DuplicateTagOnPostFiledOnce(t *testing.T) {
	posts := []Post{{ID: "a", Date: day(1), Tags: []string{"go", "go", ""}}}

	got := Aggregate(posts, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Count())
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, nil)
	assert.Empty(t, got)
	assert.Equal(t, 0, got.MaxCount())
}

func TestAssociations_WithoutAndSortByCount(t *testing.T) {
	posts := []Post{
		{ID: "a", Date: day(1), Tags: []string{"go", "web", "zig"}},
		{ID: "b", Date: day(2), Tags: []string{"go", "zig"}},
		{ID: "c", Date: day(3), Tags: []string{"go"}},
	}
	all := Aggregate(posts, nil)

	assert.Equal(t, []string{"go", "zig"}, all.Without(sets.New("web")).Tags())
	assert.Equal(t, all, all.Without(nil))
	assert.Equal(t, []string{"web", "zig", "go"}, all.SortByCount().Tags())
	assert.Equal(t, []string{"go", "web", "zig"}, all.Tags(), "SortByCount must not reorder the receiver")
	assert.Equal(t, 3, all.MaxCount())
}
