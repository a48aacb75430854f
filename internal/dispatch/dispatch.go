// Package dispatch chooses between direct and batched execution of the
// diagnostic engine based on inventory size, and normalizes the result
// shape either way.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/boisvert/sylva/internal/engine"
	"github.com/boisvert/sylva/internal/model"
)

// Analyzer is one interchangeable diagnostic execution path.
type Analyzer interface {
	Analyze(ctx context.Context, in engine.Input) (*model.Report, error)
}

// Config controls routing and the batched path's shape.
type Config struct {
	AutoSelect    bool
	TreeThreshold int // inventories at or above this route to the batched path
	BatchSize     int
	MaxWorkers    int
}

// DefaultConfig returns the standard dispatcher settings.
func DefaultConfig() Config {
	return Config{
		AutoSelect:    true,
		TreeThreshold: 100,
		BatchSize:     250,
		MaxWorkers:    4,
	}
}

// Dispatcher wraps the two analyzers behind a size-based policy.
type Dispatcher struct {
	direct  Analyzer
	batched Analyzer
	cfg     Config
}

// New creates a Dispatcher over one engine instance. Both paths share
// the engine's catalog and thresholds.
func New(eng *engine.Engine, cfg Config) *Dispatcher {
	if cfg.TreeThreshold <= 0 {
		cfg.TreeThreshold = DefaultConfig().TreeThreshold
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultConfig().MaxWorkers
	}
	return &Dispatcher{
		direct:  eng,
		batched: &Batched{eng: eng, batchSize: cfg.BatchSize, maxWorkers: cfg.MaxWorkers},
		cfg:     cfg,
	}
}

// Analyze routes by inventory size when auto-selection is enabled,
// otherwise always runs the direct path.
func (d *Dispatcher) Analyze(ctx context.Context, in engine.Input) (*model.Report, error) {
	useOptimized := d.cfg.AutoSelect && len(in.Inventory.Items) >= d.cfg.TreeThreshold
	return d.run(ctx, in, useOptimized, false)
}

// ForceStandard runs the direct path regardless of inventory size.
func (d *Dispatcher) ForceStandard(ctx context.Context, in engine.Input) (*model.Report, error) {
	return d.run(ctx, in, false, true)
}

// ForceOptimized runs the batched path regardless of inventory size.
func (d *Dispatcher) ForceOptimized(ctx context.Context, in engine.Input) (*model.Report, error) {
	return d.run(ctx, in, true, true)
}

func (d *Dispatcher) run(ctx context.Context, in engine.Input, useOptimized, forced bool) (*model.Report, error) {
	start := time.Now()

	analyzer := d.direct
	if useOptimized {
		analyzer = d.batched
	}
	slog.Debug("dispatching analysis",
		"trees", len(in.Inventory.Items), "optimized", useOptimized, "forced", forced)

	report, err := analyzer.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}

	normalize(report)
	report.Metadata.OptimizedAnalyzer = &model.DispatchInfo{
		UsedOptimizer: useOptimized,
		ExecutionTime: time.Since(start).Seconds(),
		TreeCount:     len(in.Inventory.Items),
		Forced:        forced,
	}
	return report, nil
}

// normalize guarantees every required report field is present,
// deriving minimal defaults for anything an execution path omitted.
func normalize(r *model.Report) {
	if r.SpeciesHealth == nil {
		r.SpeciesHealth = map[string]model.SpeciesSummary{}
	}
	if r.DetectedIssues == nil {
		r.DetectedIssues = []model.DetectedIssue{}
	}
	if r.Summary == "" {
		r.Summary = "No synopsis available."
	}
	if r.Recommendations.Monitoring.Frequency == "" {
		r.Recommendations.Monitoring.Frequency = "Annual"
	}
	if len(r.Recommendations.Monitoring.Methods) == 0 {
		r.Recommendations.Monitoring.Methods = []string{"visual inspection"}
	}
	if r.Metadata.EngineVersion == "" {
		r.Metadata.EngineVersion = engine.Version
	}
	if r.Metadata.GeneratedAt.IsZero() {
		r.Metadata.GeneratedAt = time.Now().UTC()
	}
}
