package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups result: hit|miss|error
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "growth",
		Name:      "source_cache_lookups_total",
		Help:      "Source cache lookups by source and result.",
	}, []string{"source", "result"})

	// SourceFetches result: ok|empty|error
	SourceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "growth",
		Name:      "source_fetches_total",
		Help:      "External source fetches by source and result.",
	}, []string{"source", "result"})

	// SynthesisOutcomes outcome: ok|fallback
	SynthesisOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "growth",
		Name:      "synthesis_outcomes_total",
		Help:      "Report section generations by section and outcome.",
	}, []string{"section", "outcome"})

	SynthesisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "growth",
		Name:      "synthesis_duration_seconds",
		Help:      "Time spent generating one report section.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
	}, []string{"section"})

	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "growth",
		Name:      "reports_generated_total",
		Help:      "Composite reports returned to callers.",
	})

	// CreditDebitFailures 报告已返回但扣费失败的次数，对账任务以此为信号
	CreditDebitFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "growth",
		Name:      "credit_debit_failures_total",
		Help:      "Reports delivered whose credit debit failed.",
	})

	HistoryWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "growth",
		Name:      "history_write_failures_total",
		Help:      "History records that could not be persisted.",
	})
)
