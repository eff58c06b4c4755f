package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for a simulation run and provides
// a ready-made /metrics handler for the dashboard.
type SimCollector struct {
	gatherer prometheus.Gatherer

	RequestsGenerated *prometheus.CounterVec
	Admissions        *prometheus.CounterVec
	RevenueTotal      prometheus.Counter
	OccupancyRate     *prometheus.GaugeVec
	AggregateRate     prometheus.Gauge
	DayDuration       prometheus.Histogram
}

// NewSimCollector registers the simulation metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_requests_generated_total",
		Help: "Total demand requests generated, labeled by season.",
	}, []string{"season"})
	requests, err := registerCounterVec(reg, requests, "sim_requests_generated_total")
	if err != nil {
		return nil, err
	}

	admissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_admissions_total",
		Help: "Admission decisions, labeled by room type, status, and rejection reason.",
	}, []string{"room_type", "status", "reason"})
	admissions, err = registerCounterVec(reg, admissions, "sim_admissions_total")
	if err != nil {
		return nil, err
	}

	revenue, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_revenue_total",
		Help: "Total committed revenue in whole currency units.",
	}), "sim_revenue_total")
	if err != nil {
		return nil, err
	}

	occupancy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_occupancy_rate",
		Help: "End-of-day occupancy rate for the current simulated day, per room type.",
	}, []string{"room_type"})
	occupancy, err = registerGaugeVec(reg, occupancy, "sim_occupancy_rate")
	if err != nil {
		return nil, err
	}

	aggregate, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_occupancy_rate_aggregate",
		Help: "End-of-day aggregate occupancy rate for the current simulated day.",
	}), "sim_occupancy_rate_aggregate")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_day_duration_seconds",
		Help:    "Wall-clock time spent simulating one day.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}), "sim_day_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:          gatherer,
		RequestsGenerated: requests,
		Admissions:        admissions,
		RevenueTotal:      revenue,
		OccupancyRate:     occupancy,
		AggregateRate:     aggregate,
		DayDuration:       duration,
	}, nil
}

// ObserveRequests records the day's generated request count for a season.
func (c *SimCollector) ObserveRequests(season string, count int) {
	if c == nil || c.RequestsGenerated == nil {
		return
	}
	c.RequestsGenerated.WithLabelValues(season).Add(float64(count))
}

// ObserveAdmission records one admission decision. Confirmed decisions pass
// an empty reason.
func (c *SimCollector) ObserveAdmission(roomType, status, reason string) {
	if c == nil || c.Admissions == nil {
		return
	}
	c.Admissions.WithLabelValues(roomType, status, reason).Inc()
}

// AddRevenue accumulates committed revenue.
func (c *SimCollector) AddRevenue(amount int) {
	if c == nil || c.RevenueTotal == nil {
		return
	}
	c.RevenueTotal.Add(float64(amount))
}

// SetOccupancy publishes one room type's end-of-day occupancy rate.
func (c *SimCollector) SetOccupancy(roomType string, rate float64) {
	if c == nil || c.OccupancyRate == nil {
		return
	}
	c.OccupancyRate.WithLabelValues(roomType).Set(rate)
}

// SetAggregateOccupancy publishes the end-of-day aggregate rate.
func (c *SimCollector) SetAggregateOccupancy(rate float64) {
	if c == nil || c.AggregateRate == nil {
		return
	}
	c.AggregateRate.Set(rate)
}

// ObserveDayDuration records how long one simulated day took to execute.
func (c *SimCollector) ObserveDayDuration(seconds float64) {
	if c == nil || c.DayDuration == nil {
		return
	}
	c.DayDuration.Observe(seconds)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
