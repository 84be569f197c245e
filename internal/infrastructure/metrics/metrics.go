// Package metrics provides Prometheus metrics for the cabinet service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route template and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cabinet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RealtimeConnections tracks open realtime streams per topic.
	RealtimeConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cabinet_realtime_connections",
			Help: "Number of currently open realtime streams",
		},
		[]string{"topic"},
	)

	// RealtimeEventsDelivered counts frames queued to subscribers.
	RealtimeEventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinet_realtime_events_delivered_total",
			Help: "Total number of realtime frames queued to subscribers",
		},
		[]string{"type"},
	)

	// RealtimeEventsDropped counts frames dropped because a subscriber buffer was full.
	RealtimeEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinet_realtime_events_dropped_total",
			Help: "Total number of realtime frames dropped on full buffers",
		},
		[]string{"type"},
	)

	// MessagesSent counts persisted messages by target kind.
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinet_messages_sent_total",
			Help: "Total number of messages sent",
		},
		[]string{"kind"},
	)

	// NotificationsCreated counts notification rows by type.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cabinet_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)
)

// RecordConnectionOpened increments the open stream gauge.
func RecordConnectionOpened(topic string) {
	RealtimeConnections.WithLabelValues(topic).Inc()
}

// RecordConnectionClosed decrements the open stream gauge.
func RecordConnectionClosed(topic string) {
	RealtimeConnections.WithLabelValues(topic).Dec()
}

func RecordMessageSent(kind string) {
	MessagesSent.WithLabelValues(kind).Inc()
}

func RecordNotificationsCreated(notificationType string, n int) {
	NotificationsCreated.WithLabelValues(notificationType).Add(float64(n))
}
