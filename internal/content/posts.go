package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/tagbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/tagbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/tagbuilder/internal/logfields"
	"git.home.luguber.info/inful/tagbuilder/internal/markdown"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// postName matches Jekyll post file names: YYYY-MM-DD-slug.ext.
var postName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

var postExts = map[string]bool{".md": true, ".markdown": true}

// PostOptions controls how post URLs are derived.
type PostOptions struct {
	Permalink config.PermalinkStyle
}

// LoadPosts reads every Markdown file below dir. Posts come back ordered by
// their slash-separated path relative to dir. Posts with `published: false`
// are skipped.
func LoadPosts(dir string, opts PostOptions) ([]taxonomy.Post, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, ferrors.FileSystemError("content directory not readable").
			WithContext("path", dir).
			WithCause(err).
			Build()
	}

	var posts []taxonomy.Post
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !postExts[strings.ToLower(filepath.Ext(p))] {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		post, ok, err := readPost(p, filepath.ToSlash(rel), opts)
		if err != nil {
			return err
		}
		if !ok {
			slog.Debug("Skipping unpublished post", logfields.File(rel))
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to walk content directory").
			WithContext("path", dir).
			Build()
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

// ParsePost builds a post from raw file content. rel is the slash-separated
// path used as the post ID; modTime is the date of last resort.
func ParsePost(content []byte, rel string, modTime time.Time, opts PostOptions) (taxonomy.Post, bool, error) {
	fm, body, _, err := frontmatter.Split(content)
	if err != nil {
		return taxonomy.Post{}, false, ferrors.WrapError(err, ferrors.CategoryContent, "invalid front matter").
			WithContext("file", rel).
			Build()
	}
	fields, err := frontmatter.Parse(fm)
	if err != nil {
		return taxonomy.Post{}, false, ferrors.WrapError(err, ferrors.CategoryContent, "invalid front matter").
			WithContext("file", rel).
			Build()
	}
	if !fields.IsPublished() {
		return taxonomy.Post{}, false, nil
	}

	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	name := base
	var nameDate time.Time
	hasNameDate := false
	if m := postName.FindStringSubmatch(base); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			nameDate, hasNameDate = t, true
			name = m[2]
		}
	}

	date, ok, err := fields.ParsedDate()
	if err != nil {
		return taxonomy.Post{}, false, ferrors.WrapError(err, ferrors.CategoryContent, "invalid post date").
			WithContext("file", rel).
			Build()
	}
	switch {
	case ok:
	case hasNameDate:
		date = nameDate
	default:
		date = modTime
	}

	title := strings.TrimSpace(fields.Title)
	if title == "" {
		if h, found := markdown.FirstHeading(body); found {
			title = h
		} else {
			title = name
		}
	}

	return taxonomy.Post{
		ID:          rel,
		Title:       title,
		URL:         postURL(name, date, opts.Permalink),
		Date:        date,
		Tags:        fields.AllTags(),
		Fingerprint: Fingerprint(fm, body),
	}, true, nil
}

// Fingerprint returns the mdfp content fingerprint of a post. The front
// matter is hashed with LF newlines and without its final newline.
func Fingerprint(fm, body []byte) string {
	normalized := strings.ReplaceAll(string(fm), "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(normalized, "\n"), string(body))
}

func readPost(p, rel string, opts PostOptions) (taxonomy.Post, bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		return taxonomy.Post{}, false, ferrors.FileSystemError("cannot stat post").
			WithContext("file", rel).
			WithCause(err).
			Build()
	}
	// #nosec G304 -- p comes from walking the configured content directory
	data, err := os.ReadFile(p)
	if err != nil {
		return taxonomy.Post{}, false, ferrors.FileSystemError("cannot read post").
			WithContext("file", rel).
			WithCause(err).
			Build()
	}
	return ParsePost(data, rel, info.ModTime(), opts)
}

func postURL(name string, date time.Time, style config.PermalinkStyle) string {
	switch style {
	case config.PermalinkPretty:
		return date.Format("/2006/01/02/") + name + "/"
	case config.PermalinkNone:
		return "/" + name + ".html"
	default:
		return date.Format("/2006/01/02/") + name + ".html"
	}
}
