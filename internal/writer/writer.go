// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer generates platform-specific content from research context.
// Each platform gets its own writer with its own prompt; all writers share
// an LLMClient so the model backend (OpenAI, Claude) can be swapped or
// mocked.
package writer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// LLMClient abstracts a chat-completion model backend.
type LLMClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ProviderError is a failure reported by a model provider. StatusCode holds
// the provider's HTTP status when one was exposed, 0 otherwise.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model provider returned %d: %s", e.StatusCode, e.Message)
	}
	return "model provider error: " + e.Message
}

// IsRateLimit reports whether err is a rate-limit condition: a structured
// provider status of 429, or "429" appearing in the error text when no
// structured status is exposed.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode > 0 {
		return pe.StatusCode == http.StatusTooManyRequests
	}
	return strings.Contains(err.Error(), "429")
}

// PlatformWriter generates content for a single platform.
type PlatformWriter struct {
	platform types.Platform
	client   LLMClient
}

// New returns a writer for p backed by client.
func New(p types.Platform, client LLMClient) *PlatformWriter {
	return &PlatformWriter{platform: p, client: client}
}

// Platform returns the destination this writer produces content for.
func (w *PlatformWriter) Platform() types.Platform {
	return w.platform
}

// Generate produces the platform's content from the research context.
func (w *PlatformWriter) Generate(ctx context.Context, researchContext string) (string, error) {
	user, err := renderUserPrompt(w.platform, researchContext)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	text, err := w.client.Complete(ctx, systemPrompt(w.platform), user)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ForAllPlatforms returns one writer per platform, in generation order,
// all sharing client.
func ForAllPlatforms(client LLMClient) []*PlatformWriter {
	writers := make([]*PlatformWriter, 0, len(types.Platforms))
	for _, p := range types.Platforms {
		writers = append(writers, New(p, client))
	}
	return writers
}
