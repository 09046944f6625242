// Package helpers exposes tag template functions for html/template. Every
// function is bound to an explicit Context; nothing reads global state.
package helpers

import (
	"fmt"
	"html"
	"html/template"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/tagbuilder/internal/config"
	"git.home.luguber.info/inful/tagbuilder/internal/tagpages"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// Context is the build state the helpers read.
type Context struct {
	Config *config.Config
	Cloud  []taxonomy.CloudEntry
	Tags   taxonomy.Associations
}

// FromResult builds a Context from a finished build.
func FromResult(cfg *config.Config, res *tagpages.Result) *Context {
	return &Context{Config: cfg, Cloud: res.Cloud, Tags: res.Tags}
}

// FuncMap returns the helpers under their template names.
func (c *Context) FuncMap() template.FuncMap {
	return template.FuncMap{
		"tag_url":         c.TagURL,
		"tag_link":        c.TagLink,
		"tag_cloud":       c.TagCloud,
		"tags":            c.PostTags,
		"keywords":        c.Keywords,
		"active_tag_data": c.ActiveTagData,
		"tag_sort":        c.TagSort,
	}
}

// TagURL returns the URL of tag's page of the given type (default "page"):
// the page's location URL below baseurl.
func (c *Context) TagURL(tag string, pageType ...string) (string, error) {
	name := config.PageTypePage
	if len(pageType) > 0 && pageType[0] != "" {
		name = pageType[0]
	}
	t, ok := c.Config.PageType(name)
	if !ok {
		return "", fmt.Errorf("unknown tag page type %q", name)
	}

	base := strings.TrimSuffix(path.Join("/", c.Config.BaseURL), "/")
	return base + tagpages.LocationFor(c.Config, t, tag).URL, nil
}

// TagLink renders an anchor for tag. The URL defaults to TagURL(tag) and
// attrs become extra attributes in key order.
func (c *Context) TagLink(tag string, args ...any) (template.HTML, error) {
	var href string
	var attrs map[string]string
	for _, a := range args {
		switch v := a.(type) {
		case string:
			href = v
		case map[string]string:
			attrs = v
		case map[string]any:
			attrs = make(map[string]string, len(v))
			for k, val := range v {
				attrs[k] = fmt.Sprint(val)
			}
		default:
			return "", fmt.Errorf("tag_link: unsupported argument %T", a)
		}
	}
	if href == "" {
		u, err := c.TagURL(tag)
		if err != nil {
			return "", err
		}
		href = u
	}
	return template.HTML(anchor(tag, href, attrs)), nil // #nosec G203 -- all parts are escaped in anchor
}

// TagCloud renders every active tag as a link with class set-<size class>,
// separated by spaces.
func (c *Context) TagCloud() (template.HTML, error) {
	links := make([]string, 0, len(c.Cloud))
	for _, e := range c.Cloud {
		u, err := c.TagURL(e.Tag)
		if err != nil {
			return "", err
		}
		links = append(links, anchor(e.Tag, u, map[string]string{"class": fmt.Sprintf("set-%d", e.Class)}))
	}
	return template.HTML(strings.Join(links, " ")), nil // #nosec G203 -- all parts are escaped in anchor
}

// PostTags renders a post's non-ignored tags as rel="tag" links joined by ", ".
func (c *Context) PostTags(post any) (template.HTML, error) {
	tags, err := tagsOf(post)
	if err != nil {
		return "", err
	}
	ignored := c.Config.Ignored()
	links := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || ignored.Has(t) {
			continue
		}
		u, err := c.TagURL(t)
		if err != nil {
			return "", err
		}
		links = append(links, anchor(t, u, map[string]string{"rel": "tag"}))
	}
	return template.HTML(strings.Join(links, ", ")), nil // #nosec G203 -- all parts are escaped in anchor
}

// Keywords joins a post's tags with commas, or returns "" when it has none.
func (c *Context) Keywords(post any) (string, error) {
	tags, err := tagsOf(post)
	if err != nil {
		return "", err
	}
	return strings.Join(tags, ","), nil
}

// ActiveTagData returns the associations of every non-ignored tag, by tag.
func (c *Context) ActiveTagData() taxonomy.Associations {
	return c.Tags.Without(c.Config.Ignored())
}

// TagSort orders associations by post count, fewest first. Without an
// argument it sorts the active tags.
func (c *Context) TagSort(as ...taxonomy.Associations) taxonomy.Associations {
	if len(as) == 0 {
		return c.ActiveTagData().SortByCount()
	}
	return as[0].SortByCount()
}

func anchor(text, href string, attrs map[string]string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteByte('"')
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(k), html.EscapeString(attrs[k]))
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(text))
	b.WriteString("</a>")
	return b.String()
}

func tagsOf(post any) ([]string, error) {
	switch v := post.(type) {
	case nil:
		return nil, nil
	case taxonomy.Post:
		return v.Tags, nil
	case *taxonomy.Post:
		if v == nil {
			return nil, nil
		}
		return v.Tags, nil
	case []string:
		return v, nil
	case map[string]any:
		switch tags := v["tags"].(type) {
		case nil:
			return nil, nil
		case []string:
			return tags, nil
		case []any:
			out := make([]string, 0, len(tags))
			for _, t := range tags {
				out = append(out, fmt.Sprint(t))
			}
			return out, nil
		case string:
			return strings.Fields(tags), nil
		default:
			return nil, fmt.Errorf("unsupported tags value %T", tags)
		}
	default:
		return nil, fmt.Errorf("cannot read tags from %T", post)
	}
}
