package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the pulse service
type Metrics struct {
	SourceFetches       *prometheus.CounterVec   // provider, outcome
	AggregationDuration *prometheus.HistogramVec // stage
	StoreOperations     *prometheus.CounterVec   // operation, status
	EventsTracked       *prometheus.GaugeVec     // status
	SyncRuns            *prometheus.CounterVec   // status
	ReportsSent         *prometheus.CounterVec   // status
}
