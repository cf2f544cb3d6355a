// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package persist writes run artifacts to the output directory: the
// consolidated JSON record, the standalone blog Markdown, and an optional
// HTML preview of the blog post.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/content-engine/pkg/types"
)

const slugMaxLen = 50

// Store writes artifacts into a single output directory, created on demand.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// SaveJSON serializes the bundle (empty fields dropped) to <name>.json and
// returns the written path.
func (s *Store) SaveJSON(bundle *types.ContentBundle, name string) (string, error) {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling bundle: %w", err)
	}
	return s.write(name+".json", data)
}

// SaveMarkdown writes text to <name>.md and returns the written path.
func (s *Store) SaveMarkdown(text, name string) (string, error) {
	return s.write(name+".md", []byte(text))
}

// SaveHTML renders Markdown to HTML via goldmark, writes it to <name>.html,
// and returns the written path.
func (s *Store) SaveHTML(markdown, name string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return s.write(name+".html", buf.Bytes())
}

func (s *Store) write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return path, nil
}

// Slug derives a filesystem-safe name from a topic: letters, digits, '-'
// and '_' pass through, every other character becomes '_', and the result
// is truncated to 50 characters.
func Slug(topic string) string {
	out := make([]rune, 0, len(topic))
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
		if len(out) == slugMaxLen {
			break
		}
	}
	return string(out)
}

// JSONName returns the JSON artifact name for a topic.
func JSONName(topic string) string {
	return "social_content_" + Slug(topic)
}

// BlogName returns the blog artifact name for a topic.
func BlogName(topic string) string {
	return "blog_post_" + Slug(topic)
}
