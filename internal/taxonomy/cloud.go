package taxonomy

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/tagbuilder/internal/quantile"
)

// CloudEntry is one tag with its size class in [1, buckets].
type CloudEntry struct {
	Tag   string `json:"tag" yaml:"tag"`
	Class int    `json:"class" yaml:"class"`
}

// Cloud assigns every tag a size class by bucketing its post count into the
// range [1, largest post count]. Entries come back in lexicographic tag order.
func Cloud(as Associations, buckets int) []CloudEntry {
	if buckets < 1 {
		buckets = quantile.DefaultBuckets
	}

	sorted := slices.Clone(as)
	slices.SortFunc(sorted, func(a, b Association) int {
		return strings.Compare(a.Tag, b.Tag)
	})

	highest := 0
	for _, a := range sorted {
		highest = max(highest, a.Count())
	}

	out := make([]CloudEntry, len(sorted))
	for i, a := range sorted {
		out[i] = CloudEntry{Tag: a.Tag, Class: quantile.Bucket(a.Count(), 1, highest, buckets)}
	}
	return out
}

// CloudMap indexes cloud entries by tag.
func CloudMap(entries []CloudEntry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.Tag] = e.Class
	}
	return m
}
