// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// serperSearchURL is the Serper web search endpoint. Declared as a var so
// tests can substitute an httptest server.
var serperSearchURL = "https://google.serper.dev/search"

// SerperClient queries the Serper search API for candidate URLs.
type SerperClient struct {
	APIKey string
	Client *http.Client
}

// serperRequest is the request body for the Serper search API.
type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// Search posts the topic to Serper and returns the organic result links in
// rank order. Rate-limited responses are retried with backoff before the
// call fails.
func (c *SerperClient) Search(ctx context.Context, topic string, num int) ([]string, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("serper API key not configured")
	}
	if num <= 0 {
		num = 5
	}

	body, err := json.Marshal(serperRequest{Query: topic, Num: num})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperSearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.APIKey)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading Serper response: %w", err)
	}

	var links []string
	for _, item := range gjson.GetBytes(data, "organic").Array() {
		if link := item.Get("link").String(); link != "" {
			links = append(links, link)
		}
	}
	return links, nil
}

// NewSerperClient builds a Serper client from research configuration.
func NewSerperClient(cfg types.ResearchConfig) *SerperClient {
	return &SerperClient{
		APIKey: cfg.SerperAPIKey,
		Client: &http.Client{Timeout: cfg.Timeout},
	}
}
