// Package metrics registers the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttendanceSheetsCreated counts daily attendance records opened
	AttendanceSheetsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "davomat",
		Name:      "attendance_sheets_created_total",
		Help:      "Number of daily attendance sheets created.",
	})

	// StatusUpdates counts member status changes, labelled by new status
	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "davomat",
		Name:      "attendance_status_updates_total",
		Help:      "Number of attendance status updates applied.",
	}, []string{"status"})

	// CertificatesIssued counts successfully issued certificates
	CertificatesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "davomat",
		Name:      "certificates_issued_total",
		Help:      "Number of certificates issued.",
	})

	// CertificateRenderFailures counts failed certificate renders
	CertificateRenderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "davomat",
		Name:      "certificate_render_failures_total",
		Help:      "Number of certificate renders that failed.",
	})
)
