// Package manifest records what a tag build read and produced, so runs can
// be compared and skipped when nothing changed.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/tagbuilder/internal/tagpages"
	"git.home.luguber.info/inful/tagbuilder/internal/taxonomy"
)

// Build statuses.
const (
	StatusSuccess  = "success"
	StatusDegraded = "degraded"
)

// BuildManifest represents a complete record of a build's inputs and outputs.
type BuildManifest struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Inputs    Inputs    `json:"inputs" yaml:"inputs"`
	Outputs   Outputs   `json:"outputs" yaml:"outputs"`
	Status    string    `json:"status" yaml:"status"`
	Degraded  bool      `json:"degraded" yaml:"degraded"`
	Warnings  []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration  int64     `json:"duration_ms" yaml:"duration_ms"`
}

// Inputs captures all inputs to the build.
type Inputs struct {
	Posts       []PostInput `json:"posts" yaml:"posts"`
	ConfigHash  string      `json:"config_hash" yaml:"config_hash"`
	ContentHash string      `json:"content_hash" yaml:"content_hash"`
}

// PostInput identifies one post by path and content fingerprint.
type PostInput struct {
	ID          string `json:"id" yaml:"id"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Outputs captures all outputs from the build.
type Outputs struct {
	TagPages   []PageOutput          `json:"tag_pages" yaml:"tag_pages"`
	IndexPages []IndexOutput         `json:"index_pages,omitempty" yaml:"index_pages,omitempty"`
	Cloud      []taxonomy.CloudEntry `json:"cloud" yaml:"cloud"`
}

// PageOutput is one generated per-tag page.
type PageOutput struct {
	Type  string `json:"type" yaml:"type"`
	Tag   string `json:"tag" yaml:"tag"`
	Path  string `json:"path" yaml:"path"`
	URL   string `json:"url" yaml:"url"`
	Posts int    `json:"posts" yaml:"posts"`
}

// IndexOutput is one page of the tag index.
type IndexOutput struct {
	Page       int    `json:"page" yaml:"page"`
	TotalPages int    `json:"total_pages" yaml:"total_pages"`
	Path       string `json:"path" yaml:"path"`
	URL        string `json:"url" yaml:"url"`
	Tags       int    `json:"tags" yaml:"tags"`
	Reused     bool   `json:"reused,omitempty" yaml:"reused,omitempty"`
}

// New records a finished build. configHash comes from config.Config.Hash.
func New(configHash string, posts []taxonomy.Post, res *tagpages.Result, start time.Time) *BuildManifest {
	m := &BuildManifest{
		ID:        uuid.NewString(),
		Timestamp: start.UTC(),
		Inputs: Inputs{
			Posts:       make([]PostInput, 0, len(posts)),
			ConfigHash:  configHash,
			ContentHash: ContentHash(posts),
		},
		Status:   StatusSuccess,
		Degraded: res.Degraded,
		Duration: time.Since(start).Milliseconds(),
	}
	for _, p := range posts {
		m.Inputs.Posts = append(m.Inputs.Posts, PostInput{ID: p.ID, Fingerprint: p.Fingerprint})
	}

	m.Outputs.TagPages = make([]PageOutput, 0, len(res.TagPages))
	for _, p := range res.TagPages {
		m.Outputs.TagPages = append(m.Outputs.TagPages, PageOutput{
			Type: p.Type, Tag: p.Tag, Path: p.Path, URL: p.URL, Posts: len(p.Posts),
		})
	}
	for _, ip := range res.IndexPages {
		m.Outputs.IndexPages = append(m.Outputs.IndexPages, IndexOutput{
			Page:       ip.Pager.Page,
			TotalPages: ip.Pager.TotalPages,
			Path:       ip.Path,
			URL:        ip.URL,
			Tags:       len(ip.Pager.Tags),
			Reused:     ip.Reused,
		})
	}
	m.Outputs.Cloud = res.Cloud

	if res.Degraded {
		m.Status = StatusDegraded
	}
	for _, w := range res.Warnings {
		m.Warnings = append(m.Warnings, w.Error())
	}
	return m
}

// ContentHash fingerprints the post set: one "id fingerprint" line per post,
// in input order.
func ContentHash(posts []taxonomy.Post) string {
	var b strings.Builder
	for _, p := range posts {
		b.WriteString(p.ID)
		b.WriteByte(' ')
		b.WriteString(p.Fingerprint)
		b.WriteByte('\n')
	}
	return mdfp.CalculateFingerprintFromParts("", b.String())
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// ToYAML serializes the manifest to YAML.
func (m *BuildManifest) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest's inputs. Two builds
// with the same hash produce the same outputs.
func (m *BuildManifest) Hash() (string, error) {
	data, err := json.Marshal(m.Inputs)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
