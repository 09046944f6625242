package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("aggregate", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.AddPagesGenerated("page", 3)
	pr.AddPagesGenerated(PageKindIndex, 2)
	pr.IncDegraded("no_template_page")
	pr.SetTagCount(3)
	pr.IncBuildOutcome(BuildOutcomeDegraded)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]bool{}
	for _, mf := range mfs {
		byName[mf.GetName()] = true
	}
	assert.True(t, byName["tagbuilder_pages_generated_total"])
	assert.True(t, byName["tagbuilder_degraded_total"])
	assert.True(t, byName["tagbuilder_tags"])
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.AddPagesGenerated("page", 1)
		pr.IncDegraded("x")
		pr.SetTagCount(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.AddPagesGenerated("feed", 4)

	path := filepath.Join(t.TempDir(), "tagbuilder.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tagbuilder_pages_generated_total{kind="feed"} 4`)
}
