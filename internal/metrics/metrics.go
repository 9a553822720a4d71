package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SpotComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argo_series_spot_computations_total",
			Help: "Total number of per-index spot computations (by function kind).",
		},
		[]string{"function"},
	)

	BarsAppended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "argo_series_bars_appended_total",
			Help: "Total number of bars appended to time axes.",
		},
	)

	FunctionsRegistered = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "argo_series_functions_registered",
			Help: "Current number of function instances held by series registries.",
		},
	)
)

func init() {
	prometheus.MustRegister(SpotComputations, BarsAppended, FunctionsRegistered)
}
