package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	EventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_events_total",
			Help: "Count of processed updates",
		},
		[]string{"kind"},
	)
	EventDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_event_duration_seconds",
			Help:    "Time taken to process an update",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"kind"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_sessions_total",
			Help: "Current number of active sessions",
		},
	)

	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_submissions_total",
			Help: "Count of submitted applications",
		},
		[]string{"outcome"}, // delivered, degraded
	)

	PostsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_posts_published_total",
			Help: "Count of published posts",
		},
	)

	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_api_failures_total",
			Help: "Count of failed API calls",
		},
		[]string{"method"},
	)

	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent messages",
		},
		[]string{"type"}, // text, photo, edit
	)
)

func Init() {
	prometheus.MustRegister(
		EventCounter,
		EventDuration,
		ActiveSessions,
		SubmissionCounter,
		PostsPublished,
		APIFailures,
		MessagesSent,
	)
}
