// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package scan

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsScan holds Prometheus metrics for the scanner.
type metricsScan struct {
	once sync.Once

	filesScanned prometheus.Counter
	filesSkipped prometheus.Counter
	parseErrors  prometheus.Counter
	syntaxErrors prometheus.Counter
	records      *prometheus.CounterVec

	parseDuration prometheus.Histogram
	totalDuration prometheus.Histogram
}

var scanMetrics metricsScan

func (m *metricsScan) init() {
	m.once.Do(func() {
		m.filesScanned = prometheus.NewCounter(prometheus.CounterOpts{Name: "typenames_scan_files_total", Help: "Files parsed"})
		m.filesSkipped = prometheus.NewCounter(prometheus.CounterOpts{Name: "typenames_scan_files_skipped_total", Help: "Files skipped by extension, exclude glob or size"})
		m.parseErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "typenames_scan_parse_errors_total", Help: "Files that could not be read or parsed"})
		m.syntaxErrors = prometheus.NewCounter(prometheus.CounterOpts{Name: "typenames_scan_syntax_errors_total", Help: "Syntax error nodes recovered by the parser"})
		m.records = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "typenames_scan_records_total", Help: "Declarations reported, by kind"}, []string{"kind"})

		buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "typenames_scan_parse_seconds", Help: "Per-file parse duration", Buckets: buckets})
		m.totalDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "typenames_scan_total_seconds", Help: "Total scan duration", Buckets: buckets})

		prometheus.MustRegister(
			m.filesScanned, m.filesSkipped, m.parseErrors, m.syntaxErrors, m.records,
			m.parseDuration, m.totalDuration,
		)
	})
}

func recordSkipped(n int) { scanMetrics.init(); scanMetrics.filesSkipped.Add(float64(n)) }
func recordParseError()   { scanMetrics.init(); scanMetrics.parseErrors.Inc() }

func recordParsed(seconds float64, syntaxErrors int) {
	scanMetrics.init()
	scanMetrics.filesScanned.Inc()
	scanMetrics.syntaxErrors.Add(float64(syntaxErrors))
	scanMetrics.parseDuration.Observe(seconds)
}

func recordRecords(records []Record, seconds float64) {
	scanMetrics.init()
	for _, r := range records {
		scanMetrics.records.WithLabelValues(string(r.Kind)).Inc()
	}
	scanMetrics.totalDuration.Observe(seconds)
}
