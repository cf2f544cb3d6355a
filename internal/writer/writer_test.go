// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/pkg/types"
)

// --- mock LLM ---

type mockLLM struct {
	response   string
	err        error
	gotSystem  string
	gotUser    string
}

func (m *mockLLM) Complete(_ context.Context, system, user string) (string, error) {
	m.gotSystem = system
	m.gotUser = user
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"structured 429", &ProviderError{StatusCode: http.StatusTooManyRequests, Message: "slow down"}, true},
		{"structured 500", &ProviderError{StatusCode: http.StatusInternalServerError, Message: "boom"}, false},
		{"wrapped structured 429", fmt.Errorf("generating: %w", &ProviderError{StatusCode: 429, Message: "x"}), true},
		{"textual 429 fallback", errors.New("provider said: rate limited (429)"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimit(tt.err))
		})
	}
}

func TestGenerateUsesPlatformPrompt(t *testing.T) {
	for _, p := range types.Platforms {
		t.Run(string(p), func(t *testing.T) {
			llm := &mockLLM{response: "  generated text\n"}
			w := New(p, llm)

			assert.Equal(t, p, w.Platform())

			text, err := w.Generate(context.Background(), "research about qubits")
			require.NoError(t, err)
			assert.Equal(t, "generated text", text, "output is trimmed")
			assert.Equal(t, systemPrompt(p), llm.gotSystem)
			assert.Contains(t, llm.gotUser, "research about qubits")
		})
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	llm := &mockLLM{err: &ProviderError{StatusCode: 429, Message: "rate limited"}}
	w := New(types.PlatformBlog, llm)

	_, err := w.Generate(context.Background(), "ctx")
	require.Error(t, err)
	assert.True(t, IsRateLimit(err))
}

func TestForAllPlatformsOrder(t *testing.T) {
	writers := ForAllPlatforms(&mockLLM{response: "x"})
	require.Len(t, writers, 4)

	got := make([]types.Platform, 0, 4)
	for _, w := range writers {
		got = append(got, w.Platform())
	}
	assert.Equal(t, []types.Platform{
		types.PlatformBlog,
		types.PlatformLinkedIn,
		types.PlatformX,
		types.PlatformInstagram,
	}, got)
}

func TestSystemPromptsCoverAllPlatforms(t *testing.T) {
	for _, p := range types.Platforms {
		assert.NotEmpty(t, systemPrompt(p), "missing prompt for %s", p)
	}
}

// --- Claude backend ---

// withClaudeServer points the package at an httptest server for the test's
// duration.
func withClaudeServer(t *testing.T, handler http.HandlerFunc) *ClaudeClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() { claudeAPIURL = old })

	c, err := NewClaudeClient(types.WriterConfig{APIKey: "test-key", Model: "test-model"})
	require.NoError(t, err)
	c.client = ts.Client()
	return c
}

func TestClaudeCompleteSuccess(t *testing.T) {
	var gotVersion, gotKey string
	client := withClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		io.WriteString(w, `{"content": [{"type": "text", "text": "a fine blog post"}]}`)
	})

	text, err := client.Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "a fine blog post", text)
	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "test-key", gotKey)
}

func TestClaudeCompleteRateLimited(t *testing.T) {
	client := withClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error": {"type": "rate_limit_error"}}`)
	})

	_, err := client.Complete(context.Background(), "system", "user")
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	assert.True(t, IsRateLimit(err))
}

func TestClaudeCompleteNoTextContent(t *testing.T) {
	client := withClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"content": []}`)
	})

	_, err := client.Complete(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

func TestNewClaudeClientValidation(t *testing.T) {
	_, err := NewClaudeClient(types.WriterConfig{Model: "m"})
	assert.Error(t, err)

	_, err = NewClaudeClient(types.WriterConfig{APIKey: "k"})
	assert.Error(t, err)
}

func TestNewOpenAIClientValidation(t *testing.T) {
	_, err := NewOpenAIClient(types.WriterConfig{Model: "m"})
	assert.Error(t, err)

	_, err = NewOpenAIClient(types.WriterConfig{APIKey: "k"})
	assert.Error(t, err)
}
