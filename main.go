package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"draftmon/internal/config"
	"draftmon/internal/monitor"
	"draftmon/internal/progress"
)

var version = "dev"

var (
	configPath string
	outputPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "draftmon",
		Short:   "Content monitor with rule matching and reply draft generation",
		Version: version,
		Long: `draftmon polls a configured content source (local HTML, remote pages,
search-engine results or a browser-driven search), matches discovered posts
against declarative rules and renders reply drafts from templates. One JSON
artifact is written per cycle, replacing the previous one.`,
		Example: `  # Run one cycle against a local HTML file
  draftmon --config config.yaml --output drafts_output.json

  # Keep polling (repeat/interval/max_cycles come from the config)
  draftmon -c monitor.yaml -o out.json`,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the monitor configuration (YAML or JSON)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "drafts_output.json", "Where to write the cycle output artifact")
	_ = rootCmd.MarkFlagRequired("config")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := progress.New(os.Stdout)
	runner := monitor.NewRunner(cfg, outputPath, log)
	if err := runner.Run(context.Background()); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}
