package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Executor metrics
	ExecutorsRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gale_executors_registered",
			Help: "Number of currently registered executors",
		},
	)

	UnitsRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gale_units_registered",
			Help: "Number of currently registered executor units",
		},
	)

	ExecutorsGranted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gale_executors_granted_total",
			Help: "Total number of executors granted by the cluster",
		},
	)

	ExecutorsLost = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gale_executors_lost_total",
			Help: "Total number of executors lost, by loss reason",
		},
		[]string{"reason"},
	)

	// Cluster metrics
	MasterDisconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gale_master_disconnects_total",
			Help: "Total number of times the connection to the cluster master was lost",
		},
	)

	RegistrationWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gale_registration_wait_seconds",
			Help:    "Time spent waiting for the cluster to accept the application",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(ExecutorsRegistered)
	prometheus.MustRegister(UnitsRegistered)
	prometheus.MustRegister(ExecutorsGranted)
	prometheus.MustRegister(ExecutorsLost)
	prometheus.MustRegister(MasterDisconnects)
	prometheus.MustRegister(RegistrationWait)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
