package config

// names lists the setting keys in declaration order
var names = []string{
	"file_path",
	"data_key",
	"gt_file_path",
	"gt_data_key",
	"output_dir",
	"correlation_threshold",
	"knn_neighbors",
	"test_size",
	"random_state",
}

// Names returns the setting keys in declaration order
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Get returns the value of the setting with the given key
func (s Settings) Get(name string) (any, bool) {
	switch name {
	case "file_path":
		return s.FilePath, true
	case "data_key":
		return s.DataKey, true
	case "gt_file_path":
		return s.GTFilePath, true
	case "gt_data_key":
		return s.GTDataKey, true
	case "output_dir":
		return s.OutputDir, true
	case "correlation_threshold":
		return s.CorrelationThreshold, true
	case "knn_neighbors":
		return s.KNNNeighbors, true
	case "test_size":
		return s.TestSize, true
	case "random_state":
		return s.RandomState, true
	}
	return nil, false
}

// Map returns a fresh key-value copy of all settings
func (s Settings) Map() map[string]any {
	m := make(map[string]any, len(names))
	for _, name := range names {
		m[name], _ = s.Get(name)
	}
	return m
}
