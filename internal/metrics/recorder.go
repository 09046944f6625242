package metrics

import "time"

// BuildOutcomeLabel enumerates final build states.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeDegraded BuildOutcomeLabel = "degraded"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
)

// PageKindIndex labels paginated tag index pages; per-tag pages use their
// page type name.
const PageKindIndex = "index"

// Recorder defines observability hooks for the tag build.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	AddPagesGenerated(kind string, n int)
	IncDegraded(reason string)
	SetTagCount(n int)
	IncBuildOutcome(outcome BuildOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) AddPagesGenerated(string, int)              {}
func (NoopRecorder) IncDegraded(string)                         {}
func (NoopRecorder) SetTagCount(int)                            {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
