// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ProfileOverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_overall_score",
			Help:    "Overall score of analyzed profiles",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	RecommendationBucketSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_bucket_size",
			Help:    "Number of universities placed in each recommendation bucket",
			Buckets: []float64{0, 1, 2, 3, 4},
		},
		[]string{"bucket"},
	)

	CounsellorActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "counsellor_actions_total",
			Help: "Counsellor actions applied to application state",
		},
		[]string{"action", "result"},
	)
)

// ObserveBuckets records the sizes of one recommendation result.
func ObserveBuckets(dream, target, safe int) {
	RecommendationBucketSize.WithLabelValues("dream").Observe(float64(dream))
	RecommendationBucketSize.WithLabelValues("target").Observe(float64(target))
	RecommendationBucketSize.WithLabelValues("safe").Observe(float64(safe))
}
