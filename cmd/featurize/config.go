package main

import (
	"github.com/spf13/cobra"

	"survfeat/pkg/pipeline"
)

func newConfigCmd() *cobra.Command {
	var configFile, preset string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipeline.LoadConfig(configFile, preset)
			if err != nil {
				return err
			}
			b, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to YAML configuration")
	cmd.Flags().StringVar(&preset, "preset", "", "Preset: base or rich")
	return cmd
}
