package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/arshiajfri/Hyperspectral-Image-Classification-with-KNN-and-Dimensionality-Reduction/internal/config"
)

func TestObserveSettings(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveSettings(config.Default())

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"correlation_threshold", testutil.ToFloat64(m.CorrelationThreshold), 0.95},
		{"knn_neighbors", testutil.ToFloat64(m.KNNNeighbors), 5},
		{"test_size", testutil.ToFloat64(m.TestSize), 0.2},
		{"random_state", testutil.ToFloat64(m.RandomState), 42},
		{"loads", testutil.ToFloat64(m.Loads), 1},
		{"load_errors", testutil.ToFloat64(m.LoadErrors), 0},
		{"info", testutil.ToFloat64(m.Info.WithLabelValues("indian_pines_corrected", "indian_pines_gt", "results")), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, tt.value)
			}
		})
	}
}

func TestObserveSettingsReplacesInfo(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	s := config.Default()
	m.ObserveSettings(s)
	s.OutputDir = "out"
	m.ObserveSettings(s)

	if n := testutil.CollectAndCount(m.Info); n != 1 {
		t.Errorf("Expected a single info series, got %d", n)
	}
	if v := testutil.ToFloat64(m.Loads); v != 2 {
		t.Errorf("Expected 2 loads, got %v", v)
	}
}

func TestObserveLoadError(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveLoadError()
	m.ObserveLoadError()

	if v := testutil.ToFloat64(m.LoadErrors); v != 2 {
		t.Errorf("Expected 2 load errors, got %v", v)
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveSettings(config.Default())

	path := filepath.Join(t.TempDir(), "hsi.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}
	for _, want := range []string{
		"hsi_settings_knn_neighbors 5",
		"hsi_settings_random_state 42",
		`hsi_settings_info{data_key="indian_pines_corrected",gt_data_key="indian_pines_gt",output_dir="results"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected metrics file to contain %q", want)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "hsi.prom"), reg)
	if err == nil {
		t.Fatalf("Expected error for missing directory but got none")
	}
	if !strings.Contains(err.Error(), "failed to write metrics") {
		t.Errorf("Expected wrapped error, got: %v", err)
	}
}
