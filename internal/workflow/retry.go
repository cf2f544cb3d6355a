// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"

	"github.com/pdiddy/content-engine/internal/writer"
)

// generateWithRetry invokes a platform writer under the bounded-retry
// policy: up to MaxAttempts attempts, retrying only on a rate-limit
// condition, with a flat RetryDelay wait between attempts. Any other
// failure, or a rate limit on the final attempt, is returned immediately.
func (w *Workflow) generateWithRetry(ctx context.Context, wr Writer, researchContext string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		text, err := wr.Generate(ctx, researchContext)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !writer.IsRateLimit(err) || attempt == w.cfg.MaxAttempts {
			return "", err
		}

		if serr := w.sleep(ctx, w.cfg.RetryDelay); serr != nil {
			return "", serr
		}
	}
	return "", lastErr
}
