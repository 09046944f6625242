package paginate

import (
	"git.home.luguber.info/inful/tagbuilder/internal/foundation"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// PageDescriptor is everything a template needs to render one page of the
// tag index. It is never modified after Build returns.
type PageDescriptor struct {
	Page             int                       `json:"page" yaml:"page"`
	PerPage          int                       `json:"per_page" yaml:"per_page"`
	Tags             taxonomy.Associations     `json:"tags" yaml:"tags"`
	TotalTags        int                       `json:"total_tags" yaml:"total_tags"`
	TotalPages       int                       `json:"total_pages" yaml:"total_pages"`
	PreviousPage     foundation.Option[int]    `json:"previous_page" yaml:"previous_page,omitempty"`
	PreviousPagePath foundation.Option[string] `json:"previous_page_path" yaml:"previous_page_path,omitempty"`
	NextPage         foundation.Option[int]    `json:"next_page" yaml:"next_page,omitempty"`
	NextPagePath     foundation.Option[string] `json:"next_page_path" yaml:"next_page_path,omitempty"`
}

// Input holds the arguments of Build.
type Input struct {
	Tags    taxonomy.Associations
	Page    int
	PerPage int
	// TotalPages overrides the page count computed from Tags and PerPage.
	TotalPages   foundation.Option[int]
	PathTemplate string
	// FirstPageURL is the template page URL; None leaves links to page 1 empty.
	FirstPageURL foundation.Option[string]
}

// Build computes the descriptor for in.Page. It has no side effects, so the
// pages of a series can be built in any order.
func Build(in Input) (*PageDescriptor, error) {
	total, err := TotalPages(len(in.Tags), in.PerPage)
	if err != nil {
		return nil, err
	}
	total = in.TotalPages.UnwrapOr(total)
	if in.Page < 1 || in.Page > total {
		return nil, outOfRange(in.Page, total)
	}

	start, end := bounds(len(in.Tags), in.Page, in.PerPage)
	d := &PageDescriptor{
		Page:       in.Page,
		PerPage:    in.PerPage,
		Tags:       in.Tags[start:end:end],
		TotalTags:  len(in.Tags),
		TotalPages: total,
	}

	if in.Page > 1 {
		d.PreviousPage = foundation.Some(in.Page - 1)
		if d.PreviousPagePath, err = in.pathFor(in.Page - 1); err != nil {
			return nil, err
		}
	}
	if in.Page < total {
		d.NextPage = foundation.Some(in.Page + 1)
		if d.NextPagePath, err = in.pathFor(in.Page + 1); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (in Input) pathFor(page int) (foundation.Option[string], error) {
	if page <= 1 {
		return in.FirstPageURL, nil
	}
	p, err := ResolvePath(in.PathTemplate, page, "")
	if err != nil {
		return foundation.None[string](), err
	}
	return foundation.Some(p), nil
}

// Data flattens the descriptor into the map shape templates index by key.
// Absent links are nil.
func (d *PageDescriptor) Data() map[string]any {
	opt := func(v any, ok bool) any {
		if !ok {
			return nil
		}
		return v
	}
	return map[string]any{
		"page":               d.Page,
		"per_page":           d.PerPage,
		"tags":               d.Tags,
		"total_tags":         d.TotalTags,
		"total_pages":        d.TotalPages,
		"previous_page":      opt(d.PreviousPage.Get()),
		"previous_page_path": opt(d.PreviousPagePath.Get()),
		"next_page":          opt(d.NextPage.Get()),
		"next_page_path":     opt(d.NextPagePath.Get()),
	}
}
