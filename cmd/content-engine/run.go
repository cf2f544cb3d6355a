// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/history"
	"github.com/pdiddy/content-engine/internal/persist"
	"github.com/pdiddy/content-engine/internal/research"
	"github.com/pdiddy/content-engine/internal/workflow"
	"github.com/pdiddy/content-engine/internal/writer"
	"github.com/pdiddy/content-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Research a topic and generate content for all platforms",
	Long: `Run researches a topic (via web search, or via explicitly provided URLs)
and generates content for the blog, LinkedIn, X, and Instagram platforms.
The consolidated result is written as JSON; a successful blog post is also
written as standalone Markdown.

With --batch, requests are read from a YAML file and run sequentially:

    requests:
      - topic: Quantum computing basics
      - topic: MCP servers explained
        urls:
          - https://example.com/article`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("topic", "", "topic to research and write about")
	runCmd.Flags().StringArray("url", nil, "source URL to scrape instead of searching (repeatable)")
	runCmd.Flags().String("batch", "", "path to a YAML batch request file")
	runCmd.Flags().String("provider", "", "model backend: openai or claude")
	runCmd.Flags().String("model", "", "model identifier for the writers")
	runCmd.Flags().String("output-dir", "", "directory for generated artifacts")
	runCmd.Flags().Bool("html-preview", false, "additionally render the blog post to HTML")
	runCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	urls, _ := cmd.Flags().GetStringArray("url")
	batchPath, _ := cmd.Flags().GetString("batch")

	if topic == "" && batchPath == "" {
		return fmt.Errorf("a topic is required: provide --topic or --batch")
	}
	if topic != "" && batchPath != "" {
		return fmt.Errorf("--topic and --batch are mutually exclusive")
	}

	cfg := engineConfig(cmd)

	requests := []workflow.Request{{Topic: topic, URLs: urls}}
	if batchPath != "" {
		rf, err := workflow.ReadRequestFile(batchPath)
		if err != nil {
			return err
		}
		requests = rf.Requests
	}

	wf, err := buildWorkflow(cfg)
	if err != nil {
		return err
	}

	var store *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		store, err = history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	failed := 0
	for _, req := range requests {
		if !executeRequest(cmd.Context(), wf, store, cfg, req) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d run(s) failed", failed, len(requests))
	}
	return nil
}

// executeRequest runs one request, renders its events, and records it in
// history. It reports whether the run completed.
func executeRequest(ctx context.Context, wf *workflow.Workflow, store *history.Store, cfg types.EngineConfig, req workflow.Request) bool {
	var bundle *types.ContentBundle
	completed := false

	for ev := range wf.Run(ctx, req.Topic, req.URLs) {
		renderEvent(ev)
		if ev.Terminal() {
			bundle = ev.Bundle
			completed = ev.Kind == types.EventRunCompleted
		}
	}

	if bundle == nil {
		fmt.Fprintf(os.Stderr, "run for %q produced no result\n", req.Topic)
		return false
	}

	if store != nil {
		recordRun(ctx, store, cfg, bundle, completed)
	}
	return completed
}

func renderEvent(ev types.Event) {
	switch ev.Kind {
	case types.EventRunStarted, types.EventPlatformStarted:
		fmt.Println(ev.Message)
	case types.EventPhaseProgress, types.EventPlatformCompleted:
		fmt.Printf("[%3.0f%%] %s\n", ev.Progress*100, ev.Step)
	case types.EventRunCompleted:
		fmt.Printf("Run completed for %q", ev.Bundle.Topic)
		if len(ev.Bundle.Errors) > 0 {
			fmt.Printf(" with %d error(s):\n", len(ev.Bundle.Errors))
			for _, e := range ev.Bundle.Errors {
				fmt.Printf("  - %s\n", e)
			}
		} else {
			fmt.Println()
		}
	case types.EventRunFailed:
		fmt.Fprintf(os.Stderr, "Run failed for %q:\n", ev.Bundle.Topic)
		for _, e := range ev.Bundle.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
	}
}

func recordRun(ctx context.Context, store *history.Store, cfg types.EngineConfig, bundle *types.ContentBundle, completed bool) {
	status := history.RunFailed
	var jsonPath, mdPath string
	if completed {
		status = history.RunCompleted
		jsonPath = filepath.Join(cfg.Output.Dir, persist.JSONName(bundle.Topic)+".json")
		if bundle.BlogPost != "" {
			mdPath = filepath.Join(cfg.Output.Dir, persist.BlogName(bundle.Topic)+".md")
		}
	}
	if _, err := store.Record(ctx, history.FromBundle(bundle, status, jsonPath, mdPath)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run history: %v\n", err)
	}
}

// buildWorkflow assembles the researcher, writers, and persister from
// configuration.
func buildWorkflow(cfg types.EngineConfig) (*workflow.Workflow, error) {
	client, err := newLLMClient(cfg.Writer)
	if err != nil {
		return nil, err
	}

	writers := make([]workflow.Writer, 0, len(types.Platforms))
	for _, w := range writer.ForAllPlatforms(client) {
		writers = append(writers, w)
	}

	researcher := research.NewResearcher(
		research.NewSerperClient(cfg.Research),
		research.NewPageFetcher(cfg.Research),
		cfg.Research,
		os.Stderr,
	)

	store := persist.NewStore(cfg.Output.Dir)

	return workflow.New(researcher, writers, store, cfg.Workflow, cfg.Output, os.Stderr), nil
}

func newLLMClient(cfg types.WriterConfig) (writer.LLMClient, error) {
	switch cfg.Provider {
	case types.ProviderClaude:
		return writer.NewClaudeClient(cfg)
	case types.ProviderOpenAI, "":
		return writer.NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q: use openai or claude", cfg.Provider)
	}
}

// engineConfig merges config-file values, environment, flags, and secrets
// into the engine configuration. Flags win over config; config wins over
// secrets for API keys.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		Research: types.ResearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("research.timeout"),
				UserAgent: viper.GetString("research.user_agent"),
			},
			SerperAPIKey:  secretDefault("serper-api-key", viper.GetString("research.serper_api_key")),
			SearchResults: viper.GetInt("research.search_results"),
			MaxFetch:      viper.GetInt("research.max_fetch"),
			MaxPageBytes:  viper.GetInt64("research.max_page_bytes"),
		},
		Writer: types.WriterConfig{
			Provider: types.LLMProvider(viper.GetString("writer.provider")),
			Model:    viper.GetString("writer.model"),
			BaseURL:  viper.GetString("writer.base_url"),
		},
		Workflow: types.WorkflowConfig{
			MaxAttempts: viper.GetInt("workflow.max_attempts"),
			RetryDelay:  viper.GetDuration("workflow.retry_delay"),
		},
		Output: types.OutputConfig{
			Dir:         viper.GetString("output.dir"),
			HTMLPreview: viper.GetBool("output.html_preview"),
		},
		History: types.HistoryConfig{
			Dir: viper.GetString("history.dir"),
		},
	}

	if cfg.Research.Timeout <= 0 {
		cfg.Research.Timeout = 30 * time.Second
	}
	if cfg.Research.UserAgent == "" {
		cfg.Research.UserAgent = "content-engine/" + version
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		cfg.Writer.Provider = types.LLMProvider(provider)
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Writer.Model = model
	}
	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if htmlPreview, _ := cmd.Flags().GetBool("html-preview"); htmlPreview {
		cfg.Output.HTMLPreview = true
	}

	switch cfg.Writer.Provider {
	case types.ProviderClaude:
		cfg.Writer.APIKey = secretDefault("anthropic-api-key", viper.GetString("writer.api_key"))
	default:
		cfg.Writer.APIKey = secretDefault("openai-api-key", viper.GetString("writer.api_key"))
	}
	if cfg.Writer.Model == "" {
		cfg.Writer.Model = "gpt-4o-mini"
	}

	return cfg
}
