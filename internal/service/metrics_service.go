package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	integrityConflicts *prometheus.CounterVec
	updates            *prometheus.CounterVec
	deactivations      *prometheus.CounterVec
	importRows         *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	integrityConflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "integrity_conflicts_total",
		Help: "Writes rejected by uniqueness or single-active-holder rules",
	}, []string{"code"})

	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "partial_updates_total",
		Help: "Partial updates by entity and whether anything changed",
	}, []string{"entity", "outcome"})

	deactivations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deactivated_rows_total",
		Help: "Rows flipped to inactive by soft deletes, including cascades",
	}, []string{"entity"})

	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "teacher_import_rows_total",
		Help: "Spreadsheet rows processed by the teacher import",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, integrityConflicts, updates, deactivations, importRows, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		integrityConflicts: integrityConflicts,
		updates:            updates,
		deactivations:      deactivations,
		importRows:         importRows,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry, mostly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordConflict counts a write rejected with a conflict code. Codes that do not
// map to 409 are ignored.
func (m *MetricsService) RecordConflict(code string) {
	if m == nil || appErrors.StatusFor(code) != http.StatusConflict {
		return
	}
	m.integrityConflicts.WithLabelValues(code).Inc()
}

// RecordUpdate counts a partial update.
func (m *MetricsService) RecordUpdate(entity string, changed bool) {
	if m == nil {
		return
	}
	outcome := "unchanged"
	if changed {
		outcome = "changed"
	}
	m.updates.WithLabelValues(entity, outcome).Inc()
}

// RecordDeactivation counts rows flipped to inactive.
func (m *MetricsService) RecordDeactivation(entity string, rows int64) {
	if m == nil || rows <= 0 {
		return
	}
	m.deactivations.WithLabelValues(entity).Add(float64(rows))
}

// RecordImportRows counts imported and failed spreadsheet rows.
func (m *MetricsService) RecordImportRows(imported, failed int) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues("imported").Add(float64(imported))
	m.importRows.WithLabelValues("failed").Add(float64(failed))
}
