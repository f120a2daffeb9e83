package effectmetrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the effects engine's Prometheus instrumentation. A nil
// *Recorder is valid and every method becomes a no-op, so callers that
// disable metrics (engineconfig.Config.MetricsEnabled == false) can skip
// constructing one entirely.
type Recorder struct {
	applies      *prometheus.CounterVec
	rejections   prometheus.Counter
	expirations  *prometheus.CounterVec
	inhibitions  *prometheus.CounterVec
	executions   *prometheus.CounterVec
	activeGauge  *prometheus.GaugeVec
	invalidPeriod prometheus.Counter

	registry *prometheus.Registry
}

// NewRecorder creates and registers a fresh Recorder against its own
// private Registry, mirroring the teacher's per-subsystem NewMetrics
// pattern rather than registering against the global default registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		applies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forge_effect_applies_total",
			Help: "Total number of effects successfully installed, by effect name.",
		}, []string{"effect"}),

		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_effect_rejections_total",
			Help: "Total number of ApplyEffect calls rejected by tag gates or stacking overflow.",
		}),

		expirations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forge_effect_expirations_total",
			Help: "Total number of effects that reached Expired, by effect name.",
		}, []string{"effect"}),

		inhibitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forge_effect_inhibitions_total",
			Help: "Total number of Applied<->Active inhibition toggles, by effect name.",
		}, []string{"effect"}),

		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forge_effect_periodic_executions_total",
			Help: "Total number of periodic executions, by effect name.",
		}, []string{"effect"}),

		activeGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "forge_effect_active",
			Help: "Current number of active effects on an entity, by effect name.",
		}, []string{"effect"}),

		invalidPeriod: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forge_effect_invalid_period_total",
			Help: "Total number of ErrInvalidPeriod occurrences.",
		}),

		registry: registry,
	}

	registry.MustRegister(r.applies, r.rejections, r.expirations, r.inhibitions, r.executions, r.activeGauge, r.invalidPeriod)
	return r
}

// Registry returns the Recorder's private Prometheus registry, for a host
// to expose via its own metrics endpoint.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) RecordApply(effectName string) {
	if r == nil {
		return
	}
	r.applies.WithLabelValues(effectName).Inc()
}

func (r *Recorder) RecordRejection() {
	if r == nil {
		return
	}
	r.rejections.Inc()
}

func (r *Recorder) RecordExpiration(effectName string) {
	if r == nil {
		return
	}
	r.expirations.WithLabelValues(effectName).Inc()
}

func (r *Recorder) RecordInhibitionToggle(effectName string) {
	if r == nil {
		return
	}
	r.inhibitions.WithLabelValues(effectName).Inc()
}

func (r *Recorder) RecordExecution(effectName string) {
	if r == nil {
		return
	}
	r.executions.WithLabelValues(effectName).Inc()
}

func (r *Recorder) SetActiveEffects(effectName string, count int) {
	if r == nil {
		return
	}
	r.activeGauge.WithLabelValues(effectName).Set(float64(count))
}

func (r *Recorder) RecordInvalidPeriod() {
	if r == nil {
		return
	}
	r.invalidPeriod.Inc()
}
