package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boisvert/sylva/internal/cache"
	"github.com/boisvert/sylva/internal/catalog"
	"github.com/boisvert/sylva/internal/config"
	"github.com/boisvert/sylva/internal/dispatch"
	"github.com/boisvert/sylva/internal/engine"
	"github.com/boisvert/sylva/internal/format"
	"github.com/boisvert/sylva/internal/logging"
	"github.com/boisvert/sylva/internal/model"
)

var (
	configPath       string
	inventoryPath    string
	climatePath      string
	observationsPath string
	outputFormat     string
	forcePath        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sylva",
		Short:   "Forestry-stand sanitary diagnosis engine",
		Version: engine.Version,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose a stand inventory",
		Long: `Run the sanitary diagnosis on a tree inventory, with optional field
observations and climate context, and print the diagnostic report.`,
		RunE: runDiagnose,
	}
	diagnoseCmd.Flags().StringVarP(&inventoryPath, "inventory", "i", "", "Inventory JSON file (required)")
	diagnoseCmd.Flags().StringVar(&climatePath, "climate", "", "Climate context JSON file")
	diagnoseCmd.Flags().StringVar(&observationsPath, "observations", "", "Field observations JSON file")
	diagnoseCmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	diagnoseCmd.Flags().StringVar(&forcePath, "force", "", "Force execution path (standard, optimized)")
	_ = diagnoseCmd.MarkFlagRequired("inventory")

	rootCmd.AddCommand(diagnoseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Log.Format, cfg.Log.Level)

	in, err := loadInput(cfg)
	if err != nil {
		return err
	}

	defs := catalog.Load(cfg.Catalog.Path)
	eng := engine.New(defs,
		engine.WithMinConfidence(cfg.Engine.MinConfidence),
		engine.WithIndicatorThresholds(cfg.Engine.Thresholds),
	)
	disp := dispatch.New(eng, dispatch.Config{
		AutoSelect:    cfg.Dispatcher.AutoSelect,
		TreeThreshold: cfg.Dispatcher.TreeThreshold,
		BatchSize:     cfg.Dispatcher.BatchSize,
		MaxWorkers:    cfg.Dispatcher.MaxWorkers,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := analyze(ctx, disp, cfg, in)
	if err != nil {
		return err
	}
	return format.Render(os.Stdout, report, outputFormat)
}

func analyze(ctx context.Context, disp *dispatch.Dispatcher, cfg config.Config, in engine.Input) (*model.Report, error) {
	switch forcePath {
	case "standard":
		return disp.ForceStandard(ctx, in)
	case "optimized":
		return disp.ForceOptimized(ctx, in)
	case "":
		if cfg.Cache.Enabled {
			return cache.New(disp, cache.WithTTL(cfg.Cache.TTL)).Analyze(ctx, in)
		}
		return disp.Analyze(ctx, in)
	default:
		return nil, fmt.Errorf("unknown --force value %q (want standard or optimized)", forcePath)
	}
}

func loadInput(cfg config.Config) (engine.Input, error) {
	var in engine.Input
	if err := readJSON(inventoryPath, &in.Inventory); err != nil {
		return in, fmt.Errorf("inventory: %w", err)
	}
	if climatePath != "" {
		in.Climate = &model.Climate{}
		if err := readJSON(climatePath, in.Climate); err != nil {
			return in, fmt.Errorf("climate: %w", err)
		}
	}
	if observationsPath != "" {
		in.Observations = &model.Observations{}
		if err := readJSON(observationsPath, in.Observations); err != nil {
			return in, fmt.Errorf("observations: %w", err)
		}
	}
	return in, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
