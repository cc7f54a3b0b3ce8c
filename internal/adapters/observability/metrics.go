package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PagesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simlab", Name: "pages_generated_total", Help: "Pages written, by kind."},
		[]string{"kind"},
	)
	PagesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simlab", Name: "pages_skipped_total", Help: "Pages not produced, by kind and reason."},
		[]string{"kind", "reason"}, // reason: unknown_plan|duplicate
	)
	LinkChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simlab", Name: "link_checks_total", Help: "Affiliate link checks, by outcome."},
		[]string{"status"}, // status: ok|broken|error
	)
	GenerateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "simlab", Name: "generate_duration_seconds",
			Help:    "Wall time of a full site generation.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(PagesGenerated, PagesSkipped, LinkChecks, GenerateDuration)
	return reg
}

// WriteTextfile dumps the registry in the node_exporter textfile format. An empty path is a no-op.
func WriteTextfile(reg *prometheus.Registry, path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, reg)
}

func ObservePage(kind string) { PagesGenerated.WithLabelValues(kind).Inc() }
func ObserveSkip(kind, reason string) { PagesSkipped.WithLabelValues(kind, reason).Inc() }
func ObserveLinkCheck(status string) { LinkChecks.WithLabelValues(status).Inc() }
func ObserveGenerate(seconds float64) { GenerateDuration.Observe(seconds) }
