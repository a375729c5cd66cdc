package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	groupsRequests   prometheus.Counter
	scheduleRequests prometheus.Counter
	exportsStarted   prometheus.Counter
	exportsFinished  *prometheus.CounterVec
	eventsCreated    prometheus.Counter
	eventsFailed     prometheus.Counter
}

// NewMetricsService registers the gateway's Prometheus collectors.
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

	groupsRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpiexport_requests_groups",
		Help: "Total group list requests",
	})

	scheduleRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpiexport_requests_group_schedule",
		Help: "Total group schedule requests",
	})

	exportsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpiexport_exports_started_total",
		Help: "Total export jobs accepted",
	})

	exportsFinished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kpiexport_exports_finished_total",
		Help: "Total export jobs by terminal status",
	}, []string{"status"})

	eventsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpiexport_calendar_events_created_total",
		Help: "Total calendar events created",
	})

	eventsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kpiexport_calendar_events_failed_total",
		Help: "Total calendar event creations that failed",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, groupsRequests, scheduleRequests,
		exportsStarted, exportsFinished, eventsCreated, eventsFailed, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		groupsRequests:   groupsRequests,
		scheduleRequests: scheduleRequests,
		exportsStarted:   exportsStarted,
		exportsFinished:  exportsFinished,
		eventsCreated:    eventsCreated,
		eventsFailed:     eventsFailed,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// IncGroupsRequests counts one group list request.
func (m *MetricsService) IncGroupsRequests() {
	if m == nil {
		return
	}
	m.groupsRequests.Inc()
}

// IncScheduleRequests counts one schedule request.
func (m *MetricsService) IncScheduleRequests() {
	if m == nil {
		return
	}
	m.scheduleRequests.Inc()
}

// IncExportsStarted counts one accepted export job.
func (m *MetricsService) IncExportsStarted() {
	if m == nil {
		return
	}
	m.exportsStarted.Inc()
}

// ObserveExportFinished counts a terminal export status.
func (m *MetricsService) ObserveExportFinished(status string) {
	if m == nil {
		return
	}
	m.exportsFinished.WithLabelValues(status).Inc()
}

// AddEventResults counts event-creation outcomes of one export run.
func (m *MetricsService) AddEventResults(created, failed int) {
	if m == nil {
		return
	}
	m.eventsCreated.Add(float64(created))
	m.eventsFailed.Add(float64(failed))
}
