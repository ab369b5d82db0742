package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio
// (no el global, así cada router de test arranca limpio).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	AdoptionRequests *prometheus.CounterVec
	ImageUploads     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refugio",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "refugio",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		AdoptionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refugio",
			Name:      "adoption_info_requests_total",
			Help:      "Adoption info requests by outcome (ok, invalid, upstream_error).",
		}, []string{"outcome"}),
		ImageUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "refugio",
			Name:      "dog_image_uploads_total",
			Help:      "Dog image uploads by outcome (ok, error).",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.AdoptionRequests,
		m.ImageUploads,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler expone el registry para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware cuenta requests usando el route pattern de chi (no el path crudo,
// para no explotar la cardinalidad con ids).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// IncAdoption / IncUpload toleran receptor nil (services sin métricas en tests).
func (m *Metrics) IncAdoption(outcome string) {
	if m == nil {
		return
	}
	m.AdoptionRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncUpload(outcome string) {
	if m == nil {
		return
	}
	m.ImageUploads.WithLabelValues(outcome).Inc()
}
