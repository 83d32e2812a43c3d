package module

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments cache behavior across modules; one Metrics value may
// be shared by every module built from the same session.
type Metrics struct {
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	remoteLoads *prometheus.CounterVec
	remoteOps   *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "armkit_cache_hits_total",
			Help: "Cache lookups answered without a remote call.",
		}, []string{"module"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "armkit_cache_misses_total",
			Help: "Cache lookups that triggered a remote fetch.",
		}, []string{"module"}),
		remoteLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "armkit_remote_loads_total",
			Help: "Full page-loader drains per module.",
		}, []string{"module"}),
		remoteOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "armkit_remote_mutations_total",
			Help: "Create, update and delete calls per module and outcome.",
		}, []string{"module", "outcome"}),
	}
	if registerer != nil {
		registerer.MustRegister(m.cacheHits, m.cacheMisses, m.remoteLoads, m.remoteOps)
	}
	return m
}

func (m *Metrics) hit(module string) {
	if m != nil {
		m.cacheHits.WithLabelValues(module).Inc()
	}
}

func (m *Metrics) miss(module string) {
	if m != nil {
		m.cacheMisses.WithLabelValues(module).Inc()
	}
}

func (m *Metrics) load(module string) {
	if m != nil {
		m.remoteLoads.WithLabelValues(module).Inc()
	}
}

func (m *Metrics) mutation(module, outcome string) {
	if m != nil {
		m.remoteOps.WithLabelValues(module, outcome).Inc()
	}
}
