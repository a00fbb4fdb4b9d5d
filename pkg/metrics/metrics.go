// Package metrics provides Prometheus metrics for the stat
// reconciliation pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "statfuse"

var (
	once sync.Once
	reg  *prometheus.Registry

	rowsScraped       *prometheus.CounterVec
	rowsDropped       *prometheus.CounterVec
	identitiesMinted  prometheus.Counter
	identitiesBound   prometheus.Counter
	identityAmbiguous prometheus.Counter
	backfillGaps      prometheus.Counter
	ruleFieldMisses   prometheus.Counter
	mergedRecords     prometheus.Counter
	fetchLatency      prometheus.Histogram
)

func ensure() {
	once.Do(func() {
		reg = prometheus.NewRegistry()

		rowsScraped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_scraped_total",
			Help:      "Raw table rows produced per source.",
		}, []string{"source", "table"})
		rowsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows dropped during normalization.",
		}, []string{"source", "table"})
		identitiesMinted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identities_minted_total",
			Help:      "New canonical player ids minted.",
		})
		identitiesBound = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identities_bound_total",
			Help:      "Source-native ids bound to canonical players.",
		})
		identityAmbiguous = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_ambiguous_total",
			Help:      "Resolutions failed as ambiguous.",
		})
		backfillGaps = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backfill_gaps_total",
			Help:      "Merged fields left absent by every source.",
		})
		ruleFieldMisses = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_field_misses_total",
			Help:      "Scoring rule fields absent from merged field sets.",
		})
		mergedRecords = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merged_records_total",
			Help:      "Merged player-season records produced.",
		})
		fetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_latency_seconds",
			Help:      "Latency of one source table fetch.",
			Buckets:   prometheus.DefBuckets,
		})

		reg.MustRegister(rowsScraped, rowsDropped, identitiesMinted, identitiesBound,
			identityAmbiguous, backfillGaps, ruleFieldMisses, mergedRecords, fetchLatency)
	})
}

// Registry returns the pipeline's metric registry for embedding.
func Registry() *prometheus.Registry {
	ensure()
	return reg
}

// RecordRowsScraped adds n scraped rows for a source table.
func RecordRowsScraped(source, table string, n int) {
	ensure()
	rowsScraped.WithLabelValues(source, table).Add(float64(n))
}

// RecordRowDropped counts a row dropped during normalization.
func RecordRowDropped(source, table string) {
	ensure()
	rowsDropped.WithLabelValues(source, table).Inc()
}

// RecordIdentityMinted counts a newly minted canonical id.
func RecordIdentityMinted() {
	ensure()
	identitiesMinted.Inc()
}

// RecordIdentityBound counts a native id bound to an existing player.
func RecordIdentityBound() {
	ensure()
	identitiesBound.Inc()
}

// RecordIdentityAmbiguous counts a resolution failed as ambiguous.
func RecordIdentityAmbiguous() {
	ensure()
	identityAmbiguous.Inc()
}

// RecordBackfillGap counts a field absent from every source.
func RecordBackfillGap() {
	ensure()
	backfillGaps.Inc()
}

// RecordRuleFieldMiss counts a scoring rule field the merged record
// did not carry.
func RecordRuleFieldMiss() {
	ensure()
	ruleFieldMisses.Inc()
}

// RecordMergedRecord counts a produced merged season record.
func RecordMergedRecord() {
	ensure()
	mergedRecords.Inc()
}

// ObserveFetchLatency records the duration of one table fetch in
// seconds.
func ObserveFetchLatency(seconds float64) {
	ensure()
	fetchLatency.Observe(seconds)
}
