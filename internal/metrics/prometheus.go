package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arshiajfri/Hyperspectral-Image-Classification-with-KNN-and-Dimensionality-Reduction/internal/config"
)

// Metrics contains the Prometheus metrics describing the effective pipeline settings
type Metrics struct {
	// Settings gauges
	CorrelationThreshold prometheus.Gauge
	KNNNeighbors         prometheus.Gauge
	TestSize             prometheus.Gauge
	RandomState          prometheus.Gauge
	Info                 *prometheus.GaugeVec

	// Load counters
	Loads      prometheus.Counter
	LoadErrors prometheus.Counter
}

// NewMetrics creates all settings metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CorrelationThreshold: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hsi_settings_correlation_threshold",
			Help: "Feature correlation cutoff used for band filtering",
		}),
		KNNNeighbors: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hsi_settings_knn_neighbors",
			Help: "Neighbor count of the k-NN classifier",
		}),
		TestSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hsi_settings_test_size",
			Help: "Fraction of labelled pixels held out for evaluation",
		}),
		RandomState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hsi_settings_random_state",
			Help: "Seed for randomized operations",
		}),
		Info: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hsi_settings_info",
			Help: "Data set and output location of the pipeline, always 1",
		}, []string{"data_key", "gt_data_key", "output_dir"}),

		Loads: factory.NewCounter(prometheus.CounterOpts{
			Name: "hsi_settings_loads_total",
			Help: "Total number of successful settings loads",
		}),
		LoadErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "hsi_settings_load_errors_total",
			Help: "Total number of failed settings loads",
		}),
	}
}

// ObserveSettings records a successful load of s
func (m *Metrics) ObserveSettings(s config.Settings) {
	m.CorrelationThreshold.Set(s.CorrelationThreshold)
	m.KNNNeighbors.Set(float64(s.KNNNeighbors))
	m.TestSize.Set(s.TestSize)
	m.RandomState.Set(float64(s.RandomState))

	m.Info.Reset()
	m.Info.WithLabelValues(s.DataKey, s.GTDataKey, s.OutputDir).Set(1)

	m.Loads.Inc()
}

// ObserveLoadError records a failed load
func (m *Metrics) ObserveLoadError() {
	m.LoadErrors.Inc()
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format read by the node exporter textfile collector
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
