package paginate

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/tagbuilder/internal/foundation"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
)

const (
	// Placeholder is replaced by the page number in the pagination path.
	Placeholder = ":num:"
	// legacyPlaceholder is the older spelling, still accepted.
	legacyPlaceholder = ":num"

	// IndexFileName is the file name a template page must have.
	IndexFileName = "index.html"
)

// ResolvePath returns the URL of page. Page 1 (and below) is the first page
// URL, returned as-is; later pages substitute the page number into template.
func ResolvePath(template string, page int, firstPageURL string) (string, error) {
	if page <= 1 {
		return firstPageURL, nil
	}

	num := strconv.Itoa(page)
	switch {
	case strings.Contains(template, Placeholder):
		template = strings.Replace(template, Placeholder, num, 1)
	case strings.Contains(template, legacyPlaceholder):
		template = strings.Replace(template, legacyPlaceholder, num, 1)
	default:
		return "", ferrors.ConfigError("invalid pagination path: it must include "+Placeholder).
			WithContext("template", template).
			WithContext("page", page).
			WithCause(ErrMissingPlaceholder).
			Build()
	}
	return EnsureLeadingSlash(template), nil
}

// HasPlaceholder reports whether template can address pages after the first.
func HasPlaceholder(template string) bool {
	return strings.Contains(template, legacyPlaceholder)
}

// EnsureLeadingSlash prefixes path with "/" unless it already starts with one.
func EnsureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// RemoveLeadingSlash strips a single leading "/".
func RemoveLeadingSlash(path string) string {
	return EnsureLeadingSlash(path)[1:]
}

// Page is an output page that already exists before pagination runs.
type Page struct {
	// Name is the file name, e.g. "index.html".
	Name string `json:"name" yaml:"name"`
	// Dir is the output directory, with a leading slash.
	Dir string `json:"dir" yaml:"dir"`
	// Path is the source-relative file path, e.g. "tags/index.html".
	Path string `json:"path" yaml:"path"`
	URL  string `json:"url" yaml:"url"`
}

// IsCandidate reports whether p can serve as page 1 of the series whose
// numbered pages live at paginatePath: it must be an index.html located in
// one of the directories between source and the pagination directory.
func IsCandidate(source, paginatePath string, p Page) bool {
	if p.Name != IndexFileName {
		return false
	}
	pageDir := filepath.Dir(filepath.Join(source, filepath.FromSlash(RemoveLeadingSlash(p.Path))))
	paginateDir := filepath.Join(source, filepath.FromSlash(RemoveLeadingSlash(paginatePath)))
	return InHierarchy(source, pageDir, filepath.Dir(paginateDir))
}

// InHierarchy walks from dir up towards source and reports whether pageDir is
// on the way. The walk stops at the filesystem root or the parent of source;
// it never takes more steps than dir has path elements.
func InHierarchy(source, pageDir, dir string) bool {
	stop := filepath.Dir(filepath.Clean(source))
	pageDir = filepath.Clean(pageDir)
	dir = filepath.Clean(dir)

	steps := strings.Count(dir, string(filepath.Separator)) + 1
	for range steps {
		if dir == filepath.Dir(dir) || dir == stop {
			return false
		}
		if pageDir == dir {
			return true
		}
		dir = filepath.Dir(dir)
	}
	return false
}

// FindTemplatePage picks the deepest candidate page (longest path; the first
// one wins a tie). None means pagination has no first page.
func FindTemplatePage(pages []Page, source, paginatePath string) foundation.Option[Page] {
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}

	var candidates []Page
	for _, p := range pages {
		if IsCandidate(source, paginatePath, p) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return foundation.None[Page]()
	}
	return foundation.Some(slices.MaxFunc(candidates, func(a, b Page) int {
		return len(a.Path) - len(b.Path)
	}))
}

// FirstPageURL returns the template page's URL, if there is a template page.
func FirstPageURL(pages []Page, source, paginatePath string) foundation.Option[string] {
	return foundation.MapOption(FindTemplatePage(pages, source, paginatePath), func(p Page) string {
		return p.URL
	})
}
