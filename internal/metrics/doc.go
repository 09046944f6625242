// Package metrics records tag build metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless a real implementation is injected:
//
//	builder := tagpages.NewBuilder(cfg).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The CLI writes a PrometheusRecorder's registry to a node_exporter textfile
// with WriteTextfile when --metrics-file is given.
package metrics
