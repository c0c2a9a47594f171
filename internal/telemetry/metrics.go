// Package telemetry exposes optional Prometheus instrumentation for the
// labeling engine. An embedded library may coexist with several engines or
// none registered with Prometheus at all, so Collector is an explicit,
// nil-safe value threaded through the engine rather than a package-level
// global singleton.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds every metric the engine reports. A nil *Collector is
// valid everywhere it's used (all methods below are nil-receiver safe), so
// callers that don't care about metrics simply never construct one.
type Collector struct {
	LabelsCreated    *prometheus.CounterVec
	LabelsDominated  *prometheus.CounterVec
	LabelsPruned     *prometheus.CounterVec
	PoolHighWater    *prometheus.GaugeVec
	StageTransitions *prometheus.CounterVec
	Rollbacks        prometheus.Counter
	SolveDuration    *prometheus.HistogramVec
	ColumnsReturned  prometheus.Histogram
}

// NewCollector builds and registers a Collector's metrics under the given
// namespace/subsystem. Pass a dedicated *prometheus.Registry in tests to
// avoid collisions with the default global registry across test runs.
func NewCollector(reg prometheus.Registerer, namespace, subsystem string) *Collector {
	factory := prometheus.WrapRegistererWith(nil, reg)
	if reg == nil {
		factory = prometheus.WrapRegistererWith(nil, prometheus.NewRegistry())
	}

	c := &Collector{
		LabelsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "labels_created_total",
			Help: "Labels inserted into a bucket after surviving dominance.",
		}, []string{"direction"}),
		LabelsDominated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "labels_dominated_total",
			Help: "Labels rejected because an existing label dominates them.",
		}, []string{"direction"}),
		LabelsPruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "labels_pruned_total",
			Help: "Previously stored labels removed because a new label dominates them.",
		}, []string{"direction"}),
		PoolHighWater: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "label_pool_high_water",
			Help: "High-water mark of the label arena since it was created.",
		}, []string{"direction"}),
		StageTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "stage_transitions_total",
			Help: "Stage promotions and demotions, labeled by direction of travel.",
		}, []string{"transition"}),
		Rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "rollbacks_total",
			Help: "Times the engine returned Rollback because the cut set changed.",
		}),
		SolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "solve_duration_seconds",
			Help:    "Wall-clock duration of Engine.Solve calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		ColumnsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "columns_returned",
			Help:    "Number of negative-reduced-cost columns returned per Solve call.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}

	for _, collector := range []prometheus.Collector{
		c.LabelsCreated, c.LabelsDominated, c.LabelsPruned, c.PoolHighWater,
		c.StageTransitions, c.Rollbacks, c.SolveDuration, c.ColumnsReturned,
	} {
		factory.MustRegister(collector)
	}

	return c
}

func (c *Collector) observeLabelCreated(direction string) {
	if c == nil {
		return
	}
	c.LabelsCreated.WithLabelValues(direction).Inc()
}

// LabelCreated records one label inserted into a bucket in the named
// direction ("fwd"/"bwd").
func (c *Collector) LabelCreated(direction string) { c.observeLabelCreated(direction) }

// LabelDominated records one label rejected by an existing dominator.
func (c *Collector) LabelDominated(direction string) {
	if c == nil {
		return
	}
	c.LabelsDominated.WithLabelValues(direction).Inc()
}

// LabelPruned records one previously stored label removed by a new dominator.
func (c *Collector) LabelPruned(direction string) {
	if c == nil {
		return
	}
	c.LabelsPruned.WithLabelValues(direction).Inc()
}

// SetPoolHighWater reports the arena's current high-water mark.
func (c *Collector) SetPoolHighWater(direction string, n int) {
	if c == nil {
		return
	}
	c.PoolHighWater.WithLabelValues(direction).Set(float64(n))
}

// StageTransition records a promotion ("promote") or demotion ("rollback").
func (c *Collector) StageTransition(transition string) {
	if c == nil {
		return
	}
	c.StageTransitions.WithLabelValues(transition).Inc()
	if transition == "rollback" {
		c.Rollbacks.Inc()
	}
}

// ObserveSolve records one Solve call's duration and outcome status.
func (c *Collector) ObserveSolve(status string, seconds float64, columns int) {
	if c == nil {
		return
	}
	c.SolveDuration.WithLabelValues(status).Observe(seconds)
	c.ColumnsReturned.Observe(float64(columns))
}
