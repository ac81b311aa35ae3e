package classify

import "github.com/prometheus/client_golang/prometheus"

var (
	devicesClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classify_devices_total",
			Help: "Devices classified, labeled by classification method.",
		},
		[]string{"method"},
	)

	oracleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classify_oracle_errors_total",
			Help: "Oracle query failures by category.",
		},
		[]string{"category"},
	)

	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classify_run_duration_seconds",
			Help:    "Duration of classification runs.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(devicesClassified)
	prometheus.MustRegister(oracleErrors)
	prometheus.MustRegister(runDuration)
}
