package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"survfeat/pkg/data"
	"survfeat/pkg/dataprep"
	"survfeat/pkg/pipeline"
	"survfeat/pkg/report"
	"survfeat/pkg/stats"
)

func newPlotCmd() *cobra.Command {
	var train, column, out, configFile, preset string
	var bins int
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot an imputed numeric column with its bin edges",
		Long: `Fit the pipeline on the training CSV and save a histogram of one imputed
column with its bin edges. Edges come from the pipeline's quantile rule for the
column when one exists, otherwise they are computed with --bins.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configFile, preset)
			if err != nil {
				return err
			}
			// encoding is irrelevant here and may drop the column
			cfg.Encoding = []dataprep.EncodeRule{}
			p, err := pipeline.Build(cfg)
			if err != nil {
				return err
			}
			t, err := data.ReadFile(train, data.PassengerSchema)
			if err != nil {
				return err
			}
			imputed, err := p.FitTransform(t)
			if err != nil {
				return err
			}
			values := report.NumericColumn(imputed, column)
			if len(values) == 0 {
				return fmt.Errorf("column %q has no numeric values", column)
			}

			edges := stats.QuantileEdges(values, bins)
			for _, s := range p.Stages() {
				b, ok := s.(*dataprep.Binner)
				if !ok {
					continue
				}
				for _, r := range b.Quantiles {
					if r.Source == column {
						edges = b.Edges(r.Target)
					}
				}
			}
			if err := report.Histogram(values, edges, column, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s histogram to %s\n", column, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&train, "train", "", "Path to training CSV (required)")
	cmd.Flags().StringVar(&column, "column", dataprep.ColFare, "Numeric column to plot")
	cmd.Flags().StringVar(&out, "out", "histogram.png", "Output image path")
	cmd.Flags().IntVar(&bins, "bins", 5, "Quantile bins when the pipeline has no rule for the column")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to YAML configuration")
	cmd.Flags().StringVar(&preset, "preset", "", "Preset: base or rich")
	_ = cmd.MarkFlagRequired("train")
	return cmd
}
