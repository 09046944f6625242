package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "tagbuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	pagesGenerated *prom.CounterVec
	degraded       *prom.CounterVec
	tags           prom.Gauge
	buildOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		pagesGenerated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_generated_total",
			Help:      "Generated pages by kind",
		}, []string{"kind"}),
		degraded: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_total",
			Help:      "Features skipped because their prerequisites were missing",
		}, []string{"reason"}),
		tags: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tags",
			Help:      "Distinct active tags in the last build",
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.pagesGenerated, pr.degraded, pr.tags, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddPagesGenerated(kind string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.pagesGenerated.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) IncDegraded(reason string) {
	if p == nil {
		return
	}
	p.degraded.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) SetTagCount(n int) {
	if p == nil {
		return
	}
	p.tags.Set(float64(n))
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes everything gathered from g in the text exposition
// format, atomically replacing path.
func WriteTextfile(g prom.Gatherer, path string) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
