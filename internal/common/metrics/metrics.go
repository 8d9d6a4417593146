// internal/common/metrics/metrics.go
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	RecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outreach_records_loaded",
			Help: "Number of influencer records loaded in the last run",
		},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outreach_recommendation_duration_seconds",
			Help:    "Duration of the generative AI request in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	EmailsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_total",
			Help: "Total number of outreach emails by status",
		},
		[]string{"status", "provider"},
	)
)

// Push sends everything registered on the default registry to a
// Prometheus Pushgateway. A run is too short-lived to be scraped.
func Push(url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
