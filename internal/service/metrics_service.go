package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	decksGenerated  *prometheus.CounterVec
	deckBuildTime   prometheus.Observer
	uploadsTotal    prometheus.Counter
	uploadBytes     prometheus.Counter
}

// NewMetricsService registers the API's Prometheus collectors.
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

	decksGenerated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decks_generated_total",
		Help: "Total slide decks generated, by graduate profile",
	}, []string{"profile"})

	deckBuildTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deck_build_duration_seconds",
		Help:    "Time spent building and writing deck artifacts",
		Buckets: prometheus.DefBuckets,
	})

	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "evidence_uploads_total",
		Help: "Total accepted evidence file uploads",
	})

	uploadBytes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "evidence_upload_bytes_total",
		Help: "Total bytes accepted as evidence uploads",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, decksGenerated, deckBuildTime, uploadsTotal, uploadBytes, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		decksGenerated:  decksGenerated,
		deckBuildTime:   deckBuildTime,
		uploadsTotal:    uploadsTotal,
		uploadBytes:     uploadBytes,
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
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDeckGenerated records a completed deck build.
func (m *MetricsService) ObserveDeckGenerated(profile string, duration time.Duration) {
	if m == nil {
		return
	}
	m.decksGenerated.WithLabelValues(profile).Inc()
	m.deckBuildTime.Observe(duration.Seconds())
}

// ObserveUpload records an accepted evidence upload.
func (m *MetricsService) ObserveUpload(size int64) {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc()
	m.uploadBytes.Add(float64(size))
}
