// Package markdown extracts the bits of a post body the tag build needs.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a Markdown heading with its plain-text content.
type Heading struct {
	Level int
	Text  string
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Headings returns every heading in document order.
func Headings(body []byte) []Heading {
	root := ParseBody(body)

	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		out = append(out, Heading{Level: h.Level, Text: plainText(h, body)})
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// FirstHeading returns the text of the first non-empty heading, preferring
// the shallowest level.
func FirstHeading(body []byte) (string, bool) {
	var best Heading
	for _, h := range Headings(body) {
		if h.Text == "" {
			continue
		}
		if best.Level == 0 || h.Level < best.Level {
			best = h
		}
	}
	return best.Text, best.Level != 0
}

func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
