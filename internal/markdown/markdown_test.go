package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadings(t *testing.T) {
	body := []byte("Intro\n\n## Second *level*\n\n# Top `code`\n\nText\n")

	hs := Headings(body)
	require.Len(t, hs, 2)
	assert.Equal(t, Heading{Level: 2, Text: "Second level"}, hs[0])
	assert.Equal(t, Heading{Level: 1, Text: "Top code"}, hs[1])
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"atx", "# Hello World\n\nbody\n", "Hello World", true},
		{"setext", "Greetings\n=========\n", "Greetings", true},
		{"prefers shallowest", "### Deep\n\n## Mid\n", "Mid", true},
		{"skips empty", "#\n\n## Named\n", "Named", true},
		{"none", "just a paragraph\n", "", false},
		{"heading inside code block", "```\n# not a heading\n```\n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstHeading([]byte(tt.body))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
