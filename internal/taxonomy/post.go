package taxonomy

import "time"

// Post is the part of a content item the tag pages need. The core never looks
// at a post's body.
type Post struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	Date        time.Time `json:"date" yaml:"date"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Association is one tag together with its posts, most recent first.
type Association struct {
	Tag   string `json:"tag" yaml:"tag"`
	Posts []Post `json:"posts" yaml:"posts"`
}

// Count returns the number of posts carrying the tag.
func (a Association) Count() int { return len(a.Posts) }
