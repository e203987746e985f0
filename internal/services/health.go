package services

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Overall and per-component health states.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CatalogStatus reports the state of the components health checks look at.
type CatalogStatus interface {
	Loaded() (bool, int)
	LiveEnabled() bool
}

type HealthService struct {
	logger *logrus.Logger
	status CatalogStatus

	// Prometheus metrics
	healthCheckStatus *prometheus.GaugeVec
	lastHealthCheck   *prometheus.GaugeVec
	systemMetrics     *prometheus.GaugeVec
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Critical  []string          `json:"critical_failures,omitempty"`
	Details   map[string]any    `json:"details,omitempty"`
}

func NewHealthService(logger *logrus.Logger, status CatalogStatus) *HealthService {
	return &HealthService{
		logger: logger,
		status: status,
		healthCheckStatus: register(logger, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "health_check_status",
			Help: "Health check status (1 = healthy, 0 = unhealthy)",
		}, []string{"service"})),
		lastHealthCheck: register(logger, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "health_check_timestamp",
			Help: "Timestamp of last health check",
		}, []string{"service"})),
		systemMetrics: register(logger, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "system_info",
			Help: "System information metrics",
		}, []string{"metric_type"})),
	}
}

// CheckHealth reports "healthy" when a catalog is active. The live lookup is
// optional and never makes the service unhealthy.
func (s *HealthService) CheckHealth() *HealthStatus {
	status := &HealthStatus{
		Timestamp: time.Now(),
		Services:  make(map[string]string),
		Details:   make(map[string]any),
	}

	loaded, songs := s.status.Loaded()
	status.Details["catalog_songs"] = songs
	if loaded && songs > 0 {
		status.Services["catalog"] = StatusHealthy
		s.UpdateHealthMetrics("catalog", true)
	} else {
		status.Services["catalog"] = StatusUnhealthy
		status.Critical = append(status.Critical, "catalog")
		s.logger.Error("Critical service catalog is unhealthy")
		s.UpdateHealthMetrics("catalog", false)
	}

	if s.status.LiveEnabled() {
		status.Services["live_lookup"] = "enabled"
	} else {
		status.Services["live_lookup"] = "disabled"
	}

	status.Status = StatusHealthy
	if len(status.Critical) > 0 {
		status.Status = StatusUnhealthy
	}

	return status
}

// Run samples runtime metrics every interval until ctx is done.
func (s *HealthService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.collectSystemMetrics()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *HealthService) collectSystemMetrics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	s.systemMetrics.WithLabelValues("memory_alloc_bytes").Set(float64(memStats.Alloc))
	s.systemMetrics.WithLabelValues("memory_sys_bytes").Set(float64(memStats.Sys))
	s.systemMetrics.WithLabelValues("goroutines_count").Set(float64(runtime.NumGoroutine()))
	s.systemMetrics.WithLabelValues("gc_runs_total").Set(float64(memStats.NumGC))

	// Record GC pause time
	if memStats.NumGC > 0 {
		lastPause := memStats.PauseNs[(memStats.NumGC+255)%256]
		s.systemMetrics.WithLabelValues("gc_pause_ns").Set(float64(lastPause))
	}
}

// UpdateHealthMetrics updates health check metrics
func (s *HealthService) UpdateHealthMetrics(serviceName string, healthy bool) {
	if healthy {
		s.healthCheckStatus.WithLabelValues(serviceName).Set(1)
	} else {
		s.healthCheckStatus.WithLabelValues(serviceName).Set(0)
	}
	s.lastHealthCheck.WithLabelValues(serviceName).Set(float64(time.Now().Unix()))
}
