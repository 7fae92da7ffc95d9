package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/arshiajfri/Hyperspectral-Image-Classification-with-KNN-and-Dimensionality-Reduction/internal/config"
	"github.com/arshiajfri/Hyperspectral-Image-Classification-with-KNN-and-Dimensionality-Reduction/internal/metrics"
)

const (
	toolName    = "hsiconfig"
	toolVersion = "1.0.0"
)

// options holds the parsed command line flags
type options struct {
	ConfigPath      string
	CheckPaths      bool
	MetricsTextfile string
	Format          string
}

func main() {
	opts := parseFlags(os.Args[1:])
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}
}

// parseFlags defines and parses command-line flags
func parseFlags(args []string) options {
	var opts options
	fs := pflag.NewFlagSet(toolName, pflag.ExitOnError)

	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML settings file. Built-in defaults are used when empty.")
	fs.BoolVar(&opts.CheckPaths, "check-paths", false, "Verify that the data and ground-truth files exist.")
	fs.StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write settings metrics to this file for the node exporter textfile collector.")
	fs.StringVarP(&opts.Format, "format", "f", "yaml", "Output format of the effective settings (yaml, json).")

	_ = fs.Parse(args)
	return opts
}

// run loads the settings, reports them and writes them to out
func run(opts options, out io.Writer) error {
	if opts.Format != "yaml" && opts.Format != "json" {
		return fmt.Errorf("unsupported format '%s', expected yaml or json", opts.Format)
	}

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		appMetrics.ObserveLoadError()
		if werr := writeMetrics(opts.MetricsTextfile, reg); werr != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, werr)
		}
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := initLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("Settings loaded",
		slog.String("tool", toolName),
		slog.String("version", toolVersion),
		slog.String("config_path", opts.ConfigPath),
		slog.String("file_path", cfg.FilePath),
		slog.String("data_key", cfg.DataKey),
		slog.String("gt_file_path", cfg.GTFilePath),
		slog.String("gt_data_key", cfg.GTDataKey),
		slog.String("output_dir", cfg.OutputDir),
		slog.Float64("correlation_threshold", cfg.CorrelationThreshold),
		slog.Int("knn_neighbors", cfg.KNNNeighbors),
		slog.Float64("test_size", cfg.TestSize),
		slog.Int64("random_state", cfg.RandomState),
	)

	if opts.CheckPaths {
		if err := cfg.CheckPaths(); err != nil {
			logger.Error("Path check failed", slog.String("error", err.Error()))
			return fmt.Errorf("path check failed: %w", err)
		}
		logger.Debug("Path check passed")
	}

	appMetrics.ObserveSettings(cfg.Settings)
	if err := writeMetrics(opts.MetricsTextfile, reg); err != nil {
		return err
	}
	if opts.MetricsTextfile != "" {
		logger.Debug("Metrics written", slog.String("path", opts.MetricsTextfile))
	}

	return printSettings(out, cfg.Settings, opts.Format)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return config.Load(path)
}

func writeMetrics(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path, g)
}

// printSettings writes the effective settings in the requested format
func printSettings(out io.Writer, s config.Settings, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}

// initLogger creates the structured logger described by cfg.
// The returned function closes the log file, if one was opened.
func initLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	closer := func() {}
	var output io.Writer
	switch cfg.Output {
	case "stdout":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.Output, err)
		}
		output = file
		closer = func() { file.Close() }
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler), closer, nil
}
