package validator

import (
	"sync"

	"github.com/Diffblue-benchmarks/ScroogeCoin/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusValidatorAcceptedTransactions prometheus.Counter
	prometheusValidatorRejectedTransactions *prometheus.CounterVec
	prometheusValidatorValidate             prometheus.Histogram
	prometheusValidatorHandleTxs            prometheus.Histogram
	prometheusValidatorBatchSize            prometheus.Histogram
	prometheusValidatorPoolSize             prometheus.Gauge
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusValidatorAcceptedTransactions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scrooge",
			Subsystem: "validator",
			Name:      "accepted_transactions",
			Help:      "Number of transactions applied to the utxo pool",
		},
	)

	prometheusValidatorRejectedTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scrooge",
			Subsystem: "validator",
			Name:      "rejected_transactions",
			Help:      "Number of transactions rejected by the validator, by reason",
		},
		[]string{"reason"},
	)

	prometheusValidatorValidate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scrooge",
			Subsystem: "validator",
			Name:      "validate",
			Help:      "Histogram of single transaction validation",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusValidatorHandleTxs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scrooge",
			Subsystem: "validator",
			Name:      "handle_txs",
			Help:      "Histogram of batch application",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusValidatorBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scrooge",
			Subsystem: "validator",
			Name:      "batch_size",
			Help:      "Number of candidate transactions per batch",
			Buckets:   util.MetricsBucketsCount,
		},
	)

	prometheusValidatorPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "scrooge",
			Subsystem: "validator",
			Name:      "pool_size",
			Help:      "Number of unspent outputs in the validator pool",
		},
	)
}
