// services/monitoring.go
package services

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "levelup_backend"
	DEFAULT_PROMETHEUS_PORT = 2112
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	completionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_completions_total",
			Help: "Committed ledger completions by kind",
		},
		[]string{"kind"},
	)

	levelUpsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_level_ups_total",
			Help: "Level-ups produced by committed completions",
		},
	)

	achievementUnlocksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_achievement_unlocks_total",
			Help: "Achievements granted by check passes",
		},
	)
)

type MonitoringService struct {
	context.DefaultService

	port     int
	registry *prometheus.Registry
	server   *http.Server
}

func (svc MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *context.Context) error {
	svc.port = DEFAULT_PROMETHEUS_PORT
	if port := os.Getenv("PROMETHEUS_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	}

	svc.registry = prometheus.NewRegistry()
	svc.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		completionsTotal,
		levelUpsTotal,
		achievementUnlocksTotal,
	)

	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(svc.registry, promhttp.HandlerOpts{}))

	svc.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", svc.port),
		Handler: mux,
	}

	go func() {
		log.WithField("port", svc.port).Info("Prometheus metrics listening")
		if err := svc.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()

	return nil
}

func (svc *MonitoringService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Close()
	}
}

// HTTPMetrics observes every request flowing through the fiber app.
func (svc *MonitoringService) HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		endpoint := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		httpRequestDuration.WithLabelValues(endpoint, method).Observe(time.Since(start).Seconds())
		return err
	}
}

func observeCompletion(kind string, leveledUp bool) {
	completionsTotal.WithLabelValues(kind).Inc()
	if leveledUp {
		levelUpsTotal.Inc()
	}
}

func observeAchievementUnlock() {
	achievementUnlocksTotal.Inc()
}
