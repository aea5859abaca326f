package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workforce",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	ClockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workforce",
		Name:      "clock_events_total",
		Help:      "Total number of successful clock-in/clock-out events",
	}, []string{"action"})

	GeofenceRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workforce",
		Name:      "geofence_rejections_total",
		Help:      "Clock-in attempts rejected for being outside the allowed radius",
	})

	SelfieUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workforce",
		Name:      "selfie_uploads_total",
		Help:      "Selfie uploads by outcome",
	}, []string{"outcome"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "workforce",
		Name:      "ws_connections",
		Help:      "Number of active chat WebSocket connections",
	})

	ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "workforce",
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages persisted",
	})
)
