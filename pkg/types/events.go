// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EventKind classifies a progress event. The set is closed: every event a
// run produces carries exactly one of these kinds.
type EventKind string

const (
	// EventRunStarted opens every run.
	EventRunStarted EventKind = "run_started"

	// EventPhaseProgress reports fractional completion after a phase
	// (research complete, consolidating).
	EventPhaseProgress EventKind = "phase_progress"

	// EventPlatformStarted announces that a platform's generation begins.
	EventPlatformStarted EventKind = "platform_started"

	// EventPlatformCompleted reports a platform attempt finishing, whether
	// it succeeded or failed. Progress always advances.
	EventPlatformCompleted EventKind = "platform_completed"

	// EventRunCompleted terminates a successful run and carries the bundle.
	EventRunCompleted EventKind = "run_completed"

	// EventRunFailed terminates a run aborted by a fatal research failure
	// and carries the partial bundle.
	EventRunFailed EventKind = "run_failed"
)

// Event is one discrete progress update, consumed incrementally by the
// caller as the run advances.
type Event struct {
	// Kind classifies the event.
	Kind EventKind `json:"kind"`

	// Message is a human-readable phase announcement.
	Message string `json:"message,omitempty"`

	// Progress is the fractional completion in [0,1]. Meaningful on
	// PhaseProgress and PlatformCompleted events; monotonically
	// non-decreasing across a run.
	Progress float64 `json:"progress,omitempty"`

	// Step is a short label for the step the progress value refers to.
	Step string `json:"step,omitempty"`

	// Platform is set on PlatformStarted and PlatformCompleted events.
	Platform Platform `json:"platform,omitempty"`

	// Bundle is the run's aggregate output. Set only on RunCompleted and
	// RunFailed events; immutable once emitted.
	Bundle *ContentBundle `json:"bundle,omitempty"`
}

// Terminal reports whether the event ends the run's event sequence.
func (e Event) Terminal() bool {
	return e.Kind == EventRunCompleted || e.Kind == EventRunFailed
}
