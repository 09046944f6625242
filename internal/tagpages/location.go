package tagpages

import (
	"path"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	"git.home.luguber.info/inful/tagbuilder/internal/paginate"
	"git.home.luguber.info/inful/tagbuilder/internal/slug"
)

// Location is where one tag page lives in the output.
type Location struct {
	// Dir is the output directory, without a leading slash.
	Dir string
	// Name is the file name inside Dir.
	Name string
	// URL is the site-relative URL with the tag escaped as one path segment.
	URL string
}

// LocationFor returns the location of tag's page of type t. Tag page records
// and the tag_url helper both derive from it, so links match output paths.
// The tag always occupies a single path segment below the page type's dir.
func LocationFor(cfg *config.Config, t config.PageType, tag string) Location {
	seg := slug.Segment(tag)
	escaped := slug.EscapedSegment(tag)
	ext := cfg.ExtFor(t.Layout)
	dir := paginate.RemoveLeadingSlash(path.Clean("/" + t.Dir))

	if cfg.Pretty() {
		return Location{
			Dir:  path.Join(dir, seg),
			Name: "index" + ext,
			URL:  paginate.EnsureLeadingSlash(path.Join(dir, escaped)) + "/",
		}
	}
	return Location{
		Dir:  dir,
		Name: seg + ext,
		URL:  paginate.EnsureLeadingSlash(path.Join(dir, escaped+ext)),
	}
}
