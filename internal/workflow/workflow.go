// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow orchestrates one content-generation run: research the
// topic once, generate content for every platform in a fixed order, then
// consolidate and persist the results. The run is surfaced to the caller as
// an incrementally consumed event sequence.
package workflow

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/content-engine/internal/persist"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Researcher gathers source material for a topic. A failed research phase
// is reported as an error, never inside the result.
type Researcher interface {
	Research(ctx context.Context, topic string, urls []string) (types.ResearchResult, error)
}

// Writer generates one platform's content from research context.
type Writer interface {
	Platform() types.Platform
	Generate(ctx context.Context, researchContext string) (string, error)
}

// Persister writes run artifacts and returns the written paths.
type Persister interface {
	SaveJSON(bundle *types.ContentBundle, name string) (string, error)
	SaveMarkdown(text, name string) (string, error)
	SaveHTML(markdown, name string) (string, error)
}

// instagramImageIdeasStub is the fixed placeholder pair recorded when the
// Instagram caption succeeds. Real image-idea extraction is not implemented;
// the field keeps its shape for downstream consumers.
var instagramImageIdeasStub = []string{
	"Idea 1: Placeholder",
	"Idea 2: Placeholder",
}

// progressSteps is research plus the four platforms; progress is reported
// as completed steps over this total.
var progressSteps = 1 + len(types.Platforms)

// Workflow runs one (topic, urls) request at a time. Each run owns its own
// ContentBundle; no state crosses run boundaries.
type Workflow struct {
	researcher Researcher
	writers    []Writer
	store      Persister
	cfg        types.WorkflowConfig
	output     types.OutputConfig
	log        io.Writer

	// sleep waits between rate-limited attempts. Tests replace it to
	// observe delays without real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New wires a workflow from its collaborators. Writers must already be in
// generation order. The log writer receives one line per notable condition.
func New(researcher Researcher, writers []Writer, store Persister, cfg types.WorkflowConfig, output types.OutputConfig, log io.Writer) *Workflow {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 20 * time.Second
	}
	if log == nil {
		log = io.Discard
	}
	return &Workflow{
		researcher: researcher,
		writers:    writers,
		store:      store,
		cfg:        cfg,
		output:     output,
		log:        log,
		sleep:      sleepCtx,
	}
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Run executes one request and returns the event sequence. The channel is
// closed after the terminal event (RunCompleted, or RunFailed when research
// fails fatally). The caller must consume events as they arrive.
func (w *Workflow) Run(ctx context.Context, topic string, urls []string) <-chan types.Event {
	events := make(chan types.Event)
	go func() {
		defer close(events)
		w.run(ctx, topic, urls, events)
	}()
	return events
}

func (w *Workflow) run(ctx context.Context, topic string, urls []string, events chan<- types.Event) {
	bundle := types.NewContentBundle(topic)

	if !w.emit(ctx, events, types.Event{
		Kind:    types.EventRunStarted,
		Message: fmt.Sprintf("Starting research for: %s", topic),
	}) {
		return
	}

	// Research phase. Failure here is fatal: no generation, no persistence.
	result, err := w.researcher.Research(ctx, topic, urls)
	if err == nil && result.Content == "" {
		err = fmt.Errorf("research produced no content for %q", topic)
	}
	if err != nil {
		fmt.Fprintf(w.log, "research failed: %v\n", err)
		bundle.AddError(fmt.Sprintf("research failed: %v", err))
		w.emit(ctx, events, types.Event{Kind: types.EventRunFailed, Bundle: bundle})
		return
	}

	bundle.ResearchContext = result.Content
	// Caller-supplied URLs are authoritative as the source list.
	if len(urls) > 0 {
		bundle.Sources = urls
	} else {
		bundle.Sources = result.Sources
	}

	if !w.emit(ctx, events, types.Event{
		Kind:     types.EventPhaseProgress,
		Progress: 1.0 / float64(progressSteps),
		Step:     "research complete",
	}) {
		return
	}

	// Generation phase. Each platform fails independently; progress always
	// advances.
	for i, wr := range w.writers {
		platform := wr.Platform()

		if !w.emit(ctx, events, types.Event{
			Kind:     types.EventPlatformStarted,
			Platform: platform,
			Message:  fmt.Sprintf("Generating %s content...", platform),
		}) {
			return
		}

		text, err := w.generateWithRetry(ctx, wr, bundle.ResearchContext)
		if err == nil && text == "" {
			err = fmt.Errorf("writer returned empty content")
		}
		if err != nil {
			fmt.Fprintf(w.log, "generation failed for %s: %v\n", platform, err)
			bundle.AddError(fmt.Sprintf("generating %s content: %v", platform, err))
		} else {
			bundle.SetPlatformContent(platform, text)
			if platform == types.PlatformInstagram {
				ideas := make([]string, len(instagramImageIdeasStub))
				copy(ideas, instagramImageIdeasStub)
				bundle.InstagramImageIdeas = ideas
			}
		}

		if !w.emit(ctx, events, types.Event{
			Kind:     types.EventPlatformCompleted,
			Platform: platform,
			Progress: float64(2+i) / float64(progressSteps),
			Step:     fmt.Sprintf("%s complete", platform),
		}) {
			return
		}
	}

	// Consolidation phase.
	if !w.emit(ctx, events, types.Event{
		Kind:     types.EventPhaseProgress,
		Progress: 1.0,
		Step:     "consolidating results",
	}) {
		return
	}

	w.persistArtifacts(bundle)

	w.emit(ctx, events, types.Event{Kind: types.EventRunCompleted, Bundle: bundle})
}

// persistArtifacts writes the JSON record and, when the blog post exists,
// the standalone Markdown (plus optional HTML preview). Write failures are
// non-fatal and recorded on the bundle.
func (w *Workflow) persistArtifacts(bundle *types.ContentBundle) {
	if path, err := w.store.SaveJSON(bundle, persist.JSONName(bundle.Topic)); err != nil {
		fmt.Fprintf(w.log, "saving JSON artifact: %v\n", err)
		bundle.AddError(fmt.Sprintf("saving JSON artifact: %v", err))
	} else {
		fmt.Fprintf(w.log, "saved %s\n", path)
	}

	if bundle.BlogPost == "" {
		return
	}

	blogName := persist.BlogName(bundle.Topic)
	if path, err := w.store.SaveMarkdown(bundle.BlogPost, blogName); err != nil {
		fmt.Fprintf(w.log, "saving blog Markdown: %v\n", err)
		bundle.AddError(fmt.Sprintf("saving blog Markdown: %v", err))
	} else {
		fmt.Fprintf(w.log, "saved %s\n", path)
	}

	if w.output.HTMLPreview {
		if path, err := w.store.SaveHTML(bundle.BlogPost, blogName); err != nil {
			fmt.Fprintf(w.log, "saving blog HTML preview: %v\n", err)
			bundle.AddError(fmt.Sprintf("saving blog HTML preview: %v", err))
		} else {
			fmt.Fprintf(w.log, "saved %s\n", path)
		}
	}
}

// emit sends ev unless the context is cancelled. It reports whether the run
// should continue.
func (w *Workflow) emit(ctx context.Context, events chan<- types.Event, ev types.Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
