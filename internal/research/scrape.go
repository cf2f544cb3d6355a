// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/content-engine/pkg/types"
)

const defaultMaxPageBytes = 1 << 20 // 1 MiB

// PageFetcher downloads a page and reduces it to readable text.
type PageFetcher struct {
	Client    *http.Client
	UserAgent string
	MaxBytes  int64
}

// NewPageFetcher builds a fetcher from research configuration.
func NewPageFetcher(cfg types.ResearchConfig) *PageFetcher {
	maxBytes := cfg.MaxPageBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxPageBytes
	}
	return &PageFetcher{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
		MaxBytes:  maxBytes,
	}
}

// Fetch downloads url and returns its visible text content. The body read
// is capped at MaxBytes.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxPageBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}

	text := extractText(doc)
	if text == "" {
		return "", fmt.Errorf("no text content at %s", url)
	}
	return text, nil
}

// skipElements are HTML elements whose text is never page content.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"noscript": true,
	"iframe": true,
	"svg":    true,
}

// extractText walks the HTML tree and collects visible text, collapsing
// runs of whitespace.
func extractText(doc *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}
