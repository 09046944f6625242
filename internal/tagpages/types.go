package tagpages

import (
	"errors"

	"git.home.luguber.info/inful/tagbuilder/internal/paginate"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// ErrNoTemplatePage is the cause of the degraded-pagination warning: no
// existing index.html sits on the paginate path's directory chain.
var ErrNoTemplatePage = errors.New("no template page for tag pagination")

// Site is the read-only input of a build.
type Site struct {
	Posts []taxonomy.Post
	// Pages are the output pages that already exist; one of them may host
	// page 1 of the tag index.
	Pages []paginate.Page
}

// TagPage is the output record for one tag and page type.
type TagPage struct {
	Type   string          `json:"type" yaml:"type"`
	Tag    string          `json:"tag" yaml:"tag"`
	Slug   string          `json:"slug" yaml:"slug"`
	Title  string          `json:"title" yaml:"title"`
	Layout string          `json:"layout" yaml:"layout"`
	Dir    string          `json:"dir" yaml:"dir"`
	Name   string          `json:"name" yaml:"name"`
	Path   string          `json:"path" yaml:"path"`
	URL    string          `json:"url" yaml:"url"`
	Posts  []taxonomy.Post `json:"-" yaml:"-"`
	// Data is what the layout sees as page data.
	Data map[string]any `json:"-" yaml:"-"`
}

// IndexPage is one page of the paginated tag index.
type IndexPage struct {
	// Template is the existing page every index page is rendered like.
	Template paginate.Page `json:"template" yaml:"template"`
	Dir      string        `json:"dir" yaml:"dir"`
	Path     string        `json:"path" yaml:"path"`
	URL      string        `json:"url" yaml:"url"`
	// Reused marks page 1, which is the template page itself.
	Reused bool                     `json:"reused" yaml:"reused"`
	Pager  *paginate.PageDescriptor `json:"pager" yaml:"pager"`
}

// Result is everything a build produced.
type Result struct {
	Tags       taxonomy.Associations `json:"-" yaml:"-"`
	TagPages   []TagPage             `json:"tag_pages" yaml:"tag_pages"`
	Cloud      []taxonomy.CloudEntry `json:"cloud" yaml:"cloud"`
	IndexPages []IndexPage           `json:"index_pages,omitempty" yaml:"index_pages,omitempty"`
	// Degraded is set when pagination was configured but could not run.
	Degraded bool    `json:"degraded" yaml:"degraded"`
	Warnings []error `json:"-" yaml:"-"`
}

// CloudMap returns the tag to size class mapping.
func (r *Result) CloudMap() map[string]int {
	return taxonomy.CloudMap(r.Cloud)
}

// PagesOfType returns the tag pages of one page type, in tag order.
func (r *Result) PagesOfType(name string) []TagPage {
	var out []TagPage
	for _, p := range r.TagPages {
		if p.Type == name {
			out = append(out, p)
		}
	}
	return out
}
