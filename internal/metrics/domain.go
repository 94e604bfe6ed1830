package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resumebuilder"

var (
	atsScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ats",
			Name:      "overall_score",
			Help:      "ATS 总分分布。",
			Buckets:   []float64{15, 25, 35, 45, 55, 65, 75},
		},
	)

	suggestionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggest",
			Name:      "source_results_total",
			Help:      "AI 建议来源的调用结果，outcome 为 model、curated 或 fallback。",
		},
		[]string{"source", "outcome"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "documents_total",
			Help:      "导出的简历文档数量。",
		},
		[]string{"format"},
	)
)

// ObserveATSScore 记录一次 ATS 评分结果。
func ObserveATSScore(overall int) {
	atsScores.Observe(float64(overall))
}

// RecordSuggestionOutcome 记录某个建议来源本次返回的结果类型。
func RecordSuggestionOutcome(source, outcome string) {
	suggestionOutcomes.WithLabelValues(source, outcome).Inc()
}

// RecordExport 记录一次导出，format 为 html、text 或 pdf。
func RecordExport(format string) {
	exportsTotal.WithLabelValues(format).Inc()
}
