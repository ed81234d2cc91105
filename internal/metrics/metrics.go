package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statuswatch_polls_total",
		Help: "Total number of poll cycles started.",
	})

	PollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statuswatch_poll_failures_total",
		Help: "Total number of poll cycles skipped because the status fetch failed.",
	})

	EventsNotified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statuswatch_events_notified_total",
		Help: "Total number of event notifications sent, labelled by event status.",
	}, []string{"status"})

	WebhookErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statuswatch_webhook_errors_total",
		Help: "Total number of failed webhook deliveries.",
	})

	TranslateFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statuswatch_translate_fallbacks_total",
		Help: "Total number of translations that fell back to the original text.",
	})

	TrackedEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statuswatch_tracked_events",
		Help: "Number of events currently tracked from the last snapshot.",
	})

	PollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "statuswatch_poll_duration_ms",
		Help:    "End-to-end poll cycle duration in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
)
