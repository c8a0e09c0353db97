package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/sub-arcade/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the tuning configuration",
	Long: `Print the default tuning YAML, a starting point for --config files
and ~/.subrun/configs/submarine.yaml.

With --effective, print the configuration the game would actually use after
applying the config search order and --difficulty.

Examples:
  subrun config > my-sub.yaml
  subrun config --effective --difficulty hard`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved configuration")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadSubmarine(flagConfig)
	if err != nil {
		return err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplySubmarinePreset(&cfg, preset)
	} else if flagDifficulty != "" {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
