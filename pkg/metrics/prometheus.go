package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus counters for the prediction service.
type Recorder struct {
	predictions *prometheus.CounterVec
	modelLoads  *prometheus.CounterVec
	lastPrice   *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mandipredict_predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"commodity", "outcome"},
		),
		modelLoads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mandipredict_model_loads_total",
				Help: "Total number of model load attempts by result",
			},
			[]string{"result"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mandipredict_last_predicted_price",
				Help: "Last predicted price per commodity",
			},
			[]string{"commodity"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mandipredict_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPrediction records a prediction attempt and its outcome.
func (r *Recorder) RecordPrediction(commodity, outcome string) {
	r.predictions.WithLabelValues(commodity, outcome).Inc()
}

// RecordModelLoad records a model load attempt result.
func (r *Recorder) RecordModelLoad(result string) {
	r.modelLoads.WithLabelValues(result).Inc()
}

// RecordLastPrice records the last predicted price for a commodity.
func (r *Recorder) RecordLastPrice(commodity string, price float64) {
	r.lastPrice.WithLabelValues(commodity).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
