// Package metrics exports the monitoring state as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

// Metrics implements tank.Observer on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	flowRate       prometheus.Gauge
	waterLevel     prometheus.Gauge
	temperature    prometheus.Gauge
	volume         prometheus.Gauge
	fillPercentage prometheus.Gauge
	snapshots      prometheus.Counter
	feedErrors     prometheus.Counter
	httpRequests   *prometheus.CounterVec
}

var _ tank.Observer = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		flowRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hydro_flow_rate_lpm",
			Help: "Latest water flow rate in litres per minute.",
		}),
		waterLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hydro_water_level_m",
			Help: "Latest water column height in metres.",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hydro_temperature_c",
			Help: "Latest water temperature in degrees Celsius.",
		}),
		volume: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hydro_accumulated_volume_l",
			Help: "Volume accumulated in the tank in litres.",
		}),
		fillPercentage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hydro_fill_percentage",
			Help: "Tank fill percentage, capped at 100.",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hydro_snapshots_total",
			Help: "Total marker snapshots applied.",
		}),
		feedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hydro_feed_errors_total",
			Help: "Total feed delivery errors observed.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.flowRate,
		m.waterLevel,
		m.temperature,
		m.volume,
		m.fillPercentage,
		m.snapshots,
		m.feedErrors,
		m.httpRequests,
	)
	return m
}

func (m *Metrics) ObserveReading(r tank.SensorReading) {
	m.flowRate.Set(r.FlowRate)
	m.waterLevel.Set(r.Level)
	m.temperature.Set(r.Temperature)
	m.snapshots.Inc()
}

func (m *Metrics) ObserveVolume(volumeL, fillPct float64) {
	m.volume.Set(volumeL)
	m.fillPercentage.Set(fillPct)
}

func (m *Metrics) ObserveFeedError() {
	m.feedErrors.Inc()
}

// Middleware counts requests by matched route and response status.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}
		m.httpRequests.WithLabelValues(c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
