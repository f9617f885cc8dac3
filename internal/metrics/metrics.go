// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinecraft_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinecraft_http_request_duration_seconds",
		Help:    "Duration of HTTP request handling",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecraft_bookings_created_total",
		Help: "Total number of booking requests received",
	})

	BookingStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinecraft_booking_status_changes_total",
		Help: "Booking status transitions by target status",
	}, []string{"status"})

	FeedbackSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecraft_feedback_submitted_total",
		Help: "Total number of feedback submissions",
	})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinecraft_uploads_total",
		Help: "File uploads by result",
	}, []string{"result"})

	UploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinecraft_upload_bytes_total",
		Help: "Bytes accepted by the upload endpoints",
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cinecraft_notification_ws_clients",
		Help: "Connected notification websocket clients",
	})
)

// ObserveHTTP records one finished request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func UploadSucceeded(size int64) {
	Uploads.WithLabelValues("ok").Inc()
	if size > 0 {
		UploadBytes.Add(float64(size))
	}
}

func UploadRejected() { Uploads.WithLabelValues("rejected").Inc() }

func UploadFailed() { Uploads.WithLabelValues("error").Inc() }
