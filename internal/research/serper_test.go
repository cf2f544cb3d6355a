// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/httputil"
)

func init() {
	// Keep 429 retry waits negligible in tests.
	httputil.RetryBaseDelay = time.Millisecond
}

// withSerperServer points the package at an httptest server for the test's
// duration.
func withSerperServer(t *testing.T, handler http.HandlerFunc) *SerperClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := serperSearchURL
	serperSearchURL = ts.URL
	t.Cleanup(func() { serperSearchURL = old })

	return &SerperClient{APIKey: "test-key", Client: ts.Client()}
}

func TestSerperSearchParsesOrganicLinks(t *testing.T) {
	var gotBody []byte
	var gotKey string
	client := withSerperServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotKey = r.Header.Get("X-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"organic": [
				{"title": "First", "link": "http://one.example"},
				{"title": "No link here"},
				{"title": "Second", "link": "http://two.example"}
			]
		}`)
	})

	links, err := client.Search(context.Background(), "quantum computing basics", 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://one.example", "http://two.example"}, links)
	assert.Equal(t, "test-key", gotKey)

	var req map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, "quantum computing basics", req["q"])
	assert.Equal(t, float64(5), req["num"])
}

func TestSerperSearchEmptyOrganic(t *testing.T) {
	client := withSerperServer(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"organic": []}`)
	})

	links, err := client.Search(context.Background(), "topic", 5)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestSerperSearchRetriesRateLimit(t *testing.T) {
	var calls int32
	client := withSerperServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"organic": [{"link": "http://one.example"}]}`)
	})

	links, err := client.Search(context.Background(), "topic", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://one.example"}, links)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSerperSearchServerError(t *testing.T) {
	client := withSerperServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "topic", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSerperSearchMissingKey(t *testing.T) {
	client := &SerperClient{}
	_, err := client.Search(context.Background(), "topic", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}
