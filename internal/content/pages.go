package content

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/paginate"
)

// LoadPages lists the *.html files below source. Directories starting with
// "_" or "." are not part of the rendered site and are skipped.
func LoadPages(source string) ([]paginate.Page, error) {
	var pages []paginate.Page
	err := filepath.WalkDir(source, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != source && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(source, p)
		if err != nil {
			return err
		}
		pages = append(pages, PageFor(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to list site pages").
			WithContext("path", source).
			Build()
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

// PageFor describes the page at the slash-separated, source-relative path rel.
// index.html is served as its directory.
func PageFor(rel string) paginate.Page {
	rel = paginate.RemoveLeadingSlash(rel)
	dir := paginate.EnsureLeadingSlash(path.Dir(rel))
	if dir == "/." {
		dir = "/"
	}
	name := path.Base(rel)

	url := "/" + rel
	if name == paginate.IndexFileName {
		url = strings.TrimSuffix(dir, "/") + "/"
	}
	return paginate.Page{Name: name, Dir: dir, Path: rel, URL: url}
}
