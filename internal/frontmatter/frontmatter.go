package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Fields is the subset of post frontmatter the tag build reads.
type Fields struct {
	Title     string  `yaml:"title"`
	Date      any     `yaml:"date"`
	Tags      TagList `yaml:"tags"`
	Tag       string  `yaml:"tag"`
	Published *bool   `yaml:"published"`
}

// AllTags returns tags plus the singular `tag` key, in that order.
func (f Fields) AllTags() []string {
	if f.Tag == "" {
		return f.Tags
	}
	return append(append([]string(nil), f.Tags...), f.Tag)
}

// IsPublished is false only when `published: false` is set.
func (f Fields) IsPublished() bool {
	return f.Published == nil || *f.Published
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParsedDate returns the `date` key as a time. ok is false when the key is
// absent; err is set when it is present but unparseable.
func (f Fields) ParsedDate() (t time.Time, ok bool, err error) {
	switch v := f.Date.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v, true, nil
	case string:
		return ParseDate(v)
	default:
		return time.Time{}, false, fmt.Errorf("unsupported date value %v", v)
	}
}

// ParseDate parses the date formats posts use in practice.
func ParseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognised date %q", s)
}

// TagList accepts a YAML sequence or a whitespace-separated string.
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			var s string
			if err := item.Decode(&s); err != nil {
				return fmt.Errorf("tag entry: %w", err)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*l = out
	case yaml.ScalarNode:
		*l = strings.Fields(node.Value)
	default:
		return fmt.Errorf("tags must be a list or a string, got %s", node.Tag)
	}
	return nil
}

// Parse decodes raw YAML frontmatter (without --- delimiters).
func Parse(frontmatter []byte) (Fields, error) {
	var f Fields
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return f, nil
	}
	if err := yaml.Unmarshal(frontmatter, &f); err != nil {
		return Fields{}, err
	}
	return f, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
