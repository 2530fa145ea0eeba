package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"survfeat/pkg/data"
	"survfeat/pkg/logger"
	"survfeat/pkg/metrics"
	"survfeat/pkg/pipeline"
	"survfeat/pkg/report"
	"survfeat/pkg/table"
)

type runOptions struct {
	train       string
	test        string
	outDir      string
	format      string
	compress    bool
	configFile  string
	preset      string
	logLevel    string
	metricsFile string
	preview     int
}

func newRunCmd() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fit the pipeline and write feature tables",
		Long: `Fit the pipeline on the training CSV and write the transformed training
table, and the transformed test table when --test is given.

Example:
  featurize run --train train.csv --test test.csv --out-dir out --preset rich --format arrow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeaturize(cmd, o)
		},
	}
	cmd.Flags().StringVar(&o.train, "train", "", "Path to training CSV, optionally .gz (required)")
	cmd.Flags().StringVar(&o.test, "test", "", "Path to test CSV transformed with the fitted pipeline")
	cmd.Flags().StringVar(&o.outDir, "out-dir", ".", "Directory for the feature tables")
	cmd.Flags().StringVar(&o.format, "format", data.FormatCSV, "Output format: csv, jsonl or arrow")
	cmd.Flags().BoolVar(&o.compress, "gzip", false, "Gzip the output files")
	cmd.Flags().StringVar(&o.configFile, "config", "", "Path to YAML configuration")
	cmd.Flags().StringVar(&o.preset, "preset", "", "Preset: base or rich (overrides the config file)")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().IntVar(&o.preview, "preview", 0, "Print the first N transformed training rows")
	_ = cmd.MarkFlagRequired("train")
	return cmd
}

func runFeaturize(cmd *cobra.Command, o runOptions) error {
	switch strings.ToLower(o.format) {
	case data.FormatCSV, data.FormatJSONL, data.FormatArrow:
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
	log, err := logger.New(logger.Config{Level: o.logLevel})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := pipeline.LoadConfig(o.configFile, o.preset)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	opts := []pipeline.Option{pipeline.WithLogger(log)}
	var collector *metrics.Collector
	if o.metricsFile != "" {
		collector = metrics.NewCollector()
		opts = append(opts, pipeline.WithMetrics(collector))
	}
	p, err := pipeline.Build(cfg, opts...)
	if err != nil {
		return err
	}

	train, err := data.ReadFile(o.train, data.PassengerSchema)
	if err != nil {
		return fmt.Errorf("read %s: %w", o.train, err)
	}
	log.Info("training table loaded", zap.String("path", o.train), zap.Int("rows", train.Len()), zap.String("preset", cfg.Preset))

	if err := p.Fit(train); err != nil {
		return err
	}
	out, err := p.Transform(train)
	if err != nil {
		return err
	}
	if err := writeTable(log, out, o, "train"); err != nil {
		return err
	}
	if o.preview > 0 {
		report.Preview(cmd.OutOrStdout(), out, o.preview)
	}

	if o.test != "" {
		test, err := data.ReadFile(o.test, data.PassengerSchema)
		if err != nil {
			return fmt.Errorf("read %s: %w", o.test, err)
		}
		out, err := p.Transform(test)
		if err != nil {
			return err
		}
		if err := writeTable(log, out, o, "test"); err != nil {
			return err
		}
	}

	if collector != nil {
		if err := collector.WriteTextfile(o.metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func outputPath(o runOptions, name string) string {
	path := filepath.Join(o.outDir, name+"_features."+strings.ToLower(o.format))
	if o.compress {
		path += ".gz"
	}
	return path
}

func writeTable(log *zap.Logger, t *table.Table, o runOptions, name string) (err error) {
	path := outputPath(o, name)
	w, err := data.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, w.Close()) }()

	if err := data.Write(w, t, strings.ToLower(o.format)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("feature table written", zap.String("path", path), zap.Int("rows", t.Len()), zap.Int("columns", len(t.Columns())))
	return nil
}
