// Package metrics counts what a batch run decoded so that scans can be
// exported to the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrewstucki/shortcut/lnk"
)

// File results.
const (
	ResultShortcut = "shortcut"
	ResultSkipped  = "skipped"
	ResultFailed   = "failed"
)

// Metrics tracks Prometheus metrics for a scan.
//
// Methods handle a nil receiver, so a nil *Metrics is a no-op when no metrics
// file is configured.
type Metrics struct {
	// Files counts scanned files.
	// Labels: result=[shortcut, skipped, failed]
	Files *prometheus.CounterVec

	// Blocks counts decoded extra data blocks by block name.
	Blocks *prometheus.CounterVec

	// Errors counts contained decoding errors by file section.
	Errors *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the metrics on their own registry.
func New() *Metrics {
	m := &Metrics{
		Files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortcut_files_total",
				Help: "Total files scanned by result",
			},
			[]string{"result"},
		),
		Blocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortcut_extra_blocks_total",
				Help: "Total extra data blocks decoded by block name",
			},
			[]string{"block"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortcut_contained_errors_total",
				Help: "Total contained decoding errors by section",
			},
			[]string{"section"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Files, m.Blocks, m.Errors)
	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordFile records a file that was not decoded as a shell link.
func (m *Metrics) RecordFile(result string) {
	if m == nil {
		return
	}
	m.Files.WithLabelValues(result).Inc()
}

// RecordShortcut records a decoded shell link along with its blocks and
// contained errors.
func (m *Metrics) RecordShortcut(info *lnk.Info) {
	if m == nil || info == nil {
		return
	}
	m.Files.WithLabelValues(ResultShortcut).Inc()
	for _, block := range info.Extra {
		m.Blocks.WithLabelValues(block.Name()).Inc()
	}
	for _, err := range info.Errors {
		m.Errors.WithLabelValues(err.Section).Inc()
	}
}

// WriteToTextfile writes the metrics in the text exposition format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
