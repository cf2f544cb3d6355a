// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResearchConfig holds settings for the research phase.
type ResearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// SerperAPIKey authenticates against the Serper search API.
	SerperAPIKey string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`

	// SearchResults is the number of search results to request (default 5).
	SearchResults int `json:"search_results" yaml:"search_results"`

	// MaxFetch is the number of top search hits to scrape (default 3).
	MaxFetch int `json:"max_fetch" yaml:"max_fetch"`

	// MaxPageBytes caps how much of each page body is read (default 1 MiB).
	MaxPageBytes int64 `json:"max_page_bytes" yaml:"max_page_bytes"`
}

// LLMProvider selects the model backend for the writers.
type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderClaude LLMProvider = "claude"
)

// WriterConfig holds shared settings for the platform writers.
type WriterConfig struct {
	// Provider selects the model backend: openai or claude.
	Provider LLMProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the selected provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (optional).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// WorkflowConfig holds settings for the orchestrator.
type WorkflowConfig struct {
	// MaxAttempts is the attempt ceiling per platform (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RetryDelay is the flat wait between rate-limited attempts
	// (default 20s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`
}

// OutputConfig holds settings for artifact persistence.
type OutputConfig struct {
	// Dir is the directory artifacts are written to (default "output").
	Dir string `json:"dir" yaml:"dir"`

	// HTMLPreview additionally renders the blog post to HTML.
	HTMLPreview bool `json:"html_preview" yaml:"html_preview"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default "data").
	Dir string `json:"dir" yaml:"dir"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Research ResearchConfig `json:"research" yaml:"research"`
	Writer   WriterConfig   `json:"writer" yaml:"writer"`
	Workflow WorkflowConfig `json:"workflow" yaml:"workflow"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
