package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Rows kept per silver cleaner run, labelled by source.
	PipelineRowsCleaned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_rows_cleaned_total",
		Help: "Rows that survived cleaning, per source",
	}, []string{"source"})

	// Rows dropped for failed coercion, labelled by source.
	PipelineRowsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_rows_dropped_total",
		Help: "Rows dropped during cleaning, per source",
	}, []string{"source"})

	// Stage completions, labelled by stage and outcome.
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Pipeline stage runs, per stage and status",
	}, []string{"stage", "status"})

	// Latency of the recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total recommendations served, labelled by scenario mode.
	RecommendRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total recommendation requests, per scenario mode",
	}, []string{"mode"})
)

func Init() {
	prometheus.MustRegister(
		PipelineRowsCleaned,
		PipelineRowsDropped,
		PipelineRunsTotal,
		RecommendLatency,
		RecommendRequestsTotal,
	)
}
