// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research gathers source material for a topic. Given explicit URLs
// it scrapes exactly those; otherwise it searches the web via the Serper
// API and scrapes a bounded number of top hits. The combined text is what
// every platform writer receives as context.
package research

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Searcher finds candidate URLs for a topic.
type Searcher interface {
	Search(ctx context.Context, topic string, num int) ([]string, error)
}

// Fetcher downloads one page and returns its readable text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Researcher implements the research phase over a Searcher and a Fetcher.
type Researcher struct {
	searcher Searcher
	fetcher  Fetcher
	cfg      types.ResearchConfig
	log      io.Writer
}

// NewResearcher wires a Researcher from its collaborators. The log writer
// receives one line per skipped source.
func NewResearcher(searcher Searcher, fetcher Fetcher, cfg types.ResearchConfig, log io.Writer) *Researcher {
	if log == nil {
		log = io.Discard
	}
	return &Researcher{searcher: searcher, fetcher: fetcher, cfg: cfg, log: log}
}

// Research gathers content for topic. When urls is non-empty those pages
// are scraped directly; otherwise the searcher supplies candidates and the
// top hits are scraped. The returned Sources list the pages whose text made
// it into Content. A run with nothing usable returns an error; failure is
// never encoded inside the result.
func (r *Researcher) Research(ctx context.Context, topic string, urls []string) (types.ResearchResult, error) {
	if len(urls) > 0 {
		content, fetched := r.scrapeAll(ctx, urls)
		if content == "" {
			return types.ResearchResult{}, fmt.Errorf("no content could be extracted from the %d provided URL(s)", len(urls))
		}
		return types.ResearchResult{Topic: topic, Content: content, Sources: fetched}, nil
	}

	num := r.cfg.SearchResults
	if num <= 0 {
		num = 5
	}
	links, err := r.searcher.Search(ctx, topic, num)
	if err != nil {
		return types.ResearchResult{}, fmt.Errorf("web search for %q: %w", topic, err)
	}
	if len(links) == 0 {
		return types.ResearchResult{}, fmt.Errorf("web search for %q returned no results", topic)
	}

	maxFetch := r.cfg.MaxFetch
	if maxFetch <= 0 {
		maxFetch = 3
	}
	if len(links) > maxFetch {
		links = links[:maxFetch]
	}

	content, fetched := r.scrapeAll(ctx, links)
	if content == "" {
		return types.ResearchResult{}, fmt.Errorf("no content could be extracted from any search result for %q", topic)
	}
	return types.ResearchResult{Topic: topic, Content: content, Sources: fetched}, nil
}

// scrapeAll fetches each URL in order, skipping failures, and joins the
// successful pages into one context block. It returns the combined text and
// the URLs that contributed to it.
func (r *Researcher) scrapeAll(ctx context.Context, urls []string) (string, []string) {
	var blocks []string
	var fetched []string
	for _, u := range urls {
		text, err := r.fetcher.Fetch(ctx, u)
		if err != nil {
			fmt.Fprintf(r.log, "warning: skipping source %s: %v\n", u, err)
			continue
		}
		blocks = append(blocks, fmt.Sprintf("--- Source: %s ---\n\n%s", u, text))
		fetched = append(fetched, u)
	}
	return strings.Join(blocks, "\n\n"), fetched
}
