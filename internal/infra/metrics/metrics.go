// Package metrics exposes Prometheus collectors for the showroom.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	machines  *prometheus.GaugeVec
	renders   *prometheus.CounterVec
}

// New builds collectors on a private registry. A nil *Metrics is valid and
// records nothing.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zozikafe",
			Name:      "admin_mutations_total",
			Help:      "Admin changes to the machine list by operation and result.",
		}, []string{"op", "result"}),
		machines: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "zozikafe",
			Name:      "machines",
			Help:      "Machines in the admin inventory by status.",
		}, []string{"status"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zozikafe",
			Name:      "public_renders_total",
			Help:      "Public grid renders by language.",
		}, []string{"lang"}),
	}
	reg.MustRegister(
		m.mutations,
		m.machines,
		m.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Mutation(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Inventory(available, sold int) {
	if m == nil {
		return
	}
	m.machines.WithLabelValues("available").Set(float64(available))
	m.machines.WithLabelValues("sold").Set(float64(sold))
}

func (m *Metrics) Render(lang string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(lang).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
