package taxonomy

import (
	"slices"
	"sort"
	"strings"

	"git.home.luguber.info/inful/tagbuilder/internal/util/sets"
)

// Associations is the tag -> posts table, ordered by tag name.
// Every tag has at least one post.
type Associations []Association

// Aggregate files every post under each of its tags, skipping ignored tags.
// Within a tag, posts are ordered by descending date; posts with the same
// date keep their input order. A post listing the same tag twice is filed once.
func Aggregate(posts []Post, ignored sets.Set[string]) Associations {
	buckets := make(map[string][]Post)
	for _, p := range posts {
		seen := sets.New[string]()
		for _, tag := range p.Tags {
			if tag == "" || ignored.Has(tag) || seen.Has(tag) {
				continue
			}
			seen.Add(tag)
			buckets[tag] = append(buckets[tag], p)
		}
	}

	out := make(Associations, 0, len(buckets))
	for tag, tagged := range buckets {
		sort.SliceStable(tagged, func(i, j int) bool {
			return tagged[i].Date.After(tagged[j].Date)
		})
		out = append(out, Association{Tag: tag, Posts: tagged})
	}
	slices.SortFunc(out, func(a, b Association) int {
		return strings.Compare(a.Tag, b.Tag)
	})
	return out
}

// Tags returns the tag names in table order.
func (as Associations) Tags() []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Tag
	}
	return out
}

// Posts returns the posts filed under tag, or nil.
func (as Associations) Posts(tag string) []Post {
	i, ok := slices.BinarySearchFunc(as, tag, func(a Association, t string) int {
		return strings.Compare(a.Tag, t)
	})
	if !ok {
		return nil
	}
	return as[i].Posts
}

// MaxCount returns the largest post count of any tag, 0 for an empty table.
func (as Associations) MaxCount() int {
	highest := 0
	for _, a := range as {
		highest = max(highest, a.Count())
	}
	return highest
}

// Without returns the associations whose tag is not in ignored.
func (as Associations) Without(ignored sets.Set[string]) Associations {
	if ignored.Len() == 0 {
		return as
	}
	out := make(Associations, 0, len(as))
	for _, a := range as {
		if !ignored.Has(a.Tag) {
			out = append(out, a)
		}
	}
	return out
}

// SortByCount returns a copy ordered by ascending post count. Ties keep tag order.
func (as Associations) SortByCount() Associations {
	out := slices.Clone(as)
	slices.SortStableFunc(out, func(a, b Association) int {
		return a.Count() - b.Count()
	})
	return out
}
