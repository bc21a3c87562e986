// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package metrics provides Prometheus instrumentation: HTTP request
// latency/throughput, document store operations, auth outcomes, and reminder
// lifecycle transitions. Exposed at /metrics in Prometheus text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Document Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation", "collection"},
	)

	// Auth Metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // "success", "failure", "locked"
	)

	AuthzDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_denied_total",
			Help: "Total number of authorization denials",
		},
		[]string{"role", "resource"},
	)

	// Reminder Lifecycle Metrics
	ReminderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_transitions_total",
			Help: "Total number of reminder lifecycle transitions",
		},
		[]string{"transition"}, // "snooze", "complete", "reschedule"
	)

	// Audit Metrics
	AuditEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Total number of audit events recorded",
		},
		[]string{"resource", "action"},
	)

	// Upload Metrics
	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_bytes_total",
			Help: "Total bytes accepted by the upload endpoint",
		},
		[]string{"feature"},
	)

	UploadRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_rejections_total",
			Help: "Total number of rejected uploads",
		},
		[]string{"feature", "reason"}, // "too_large", "unknown_feature"
	)
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStoreOperation records a document store operation's duration and,
// when err is non-nil, its failure.
func RecordStoreOperation(operation, collection string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordLoginAttempt records one login attempt with its outcome.
func RecordLoginAttempt(outcome string) {
	LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordAuthzDenied records one authorization denial.
func RecordAuthzDenied(role, resource string) {
	AuthzDeniedTotal.WithLabelValues(role, resource).Inc()
}

// RecordReminderTransition records one reminder lifecycle transition.
func RecordReminderTransition(transition string) {
	ReminderTransitionsTotal.WithLabelValues(transition).Inc()
}

// RecordAuditEvent records one saved audit event.
func RecordAuditEvent(resource, action string) {
	AuditEventsTotal.WithLabelValues(resource, action).Inc()
}

// RecordUpload records an accepted upload's size.
func RecordUpload(feature string, sizeBytes int64) {
	UploadBytesTotal.WithLabelValues(feature).Add(float64(sizeBytes))
}

// RecordUploadRejection records a rejected upload.
func RecordUploadRejection(feature, reason string) {
	UploadRejectionsTotal.WithLabelValues(feature, reason).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}
