// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/pkg/types"
)

func TestFetchExtractsVisibleText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><head>
			<title>Quantum Basics</title>
			<style>body { color: red; }</style>
			<script>console.log("tracking");</script>
		</head><body>
			<h1>Quantum   Computing</h1>
			<p>Qubits hold superpositions.</p>
			<noscript>Enable JS</noscript>
		</body></html>`)
	}))
	defer ts.Close()

	f := &PageFetcher{Client: ts.Client(), UserAgent: "content-engine/test"}
	text, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Quantum Computing")
	assert.Contains(t, text, "Qubits hold superpositions.")
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Enable JS")
	// Whitespace runs are collapsed.
	assert.NotContains(t, text, "  ")
}

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, "<html><body>ok</body></html>")
	}))
	defer ts.Close()

	f := NewPageFetcher(types.ResearchConfig{HTTPConfig: types.HTTPConfig{UserAgent: "content-engine/0.1"}})
	f.Client = ts.Client()
	_, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "content-engine/0.1", gotUA)
}

func TestFetchNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := &PageFetcher{Client: ts.Client()}
	_, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetchEmptyPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "<html><body><script>only()</script></body></html>")
	}))
	defer ts.Close()

	f := &PageFetcher{Client: ts.Client()}
	_, err := f.Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

func TestFetchRespectsByteCap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "<html><body>")
		for i := 0; i < 10000; i++ {
			io.WriteString(w, "padding words here ")
		}
		io.WriteString(w, "</body></html>")
	}))
	defer ts.Close()

	f := &PageFetcher{Client: ts.Client(), MaxBytes: 512}
	text, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), 600)
}
