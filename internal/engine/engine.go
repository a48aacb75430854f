// Package engine sequences the diagnostic stages — species aggregation,
// indicator calculation, issue detection, risk evaluation,
// recommendation synthesis, and summary generation — into one report.
//
// The pipeline is a strictly sequential chain of pure transforms over
// the immutable catalog: no stage is skipped or reordered, and nothing
// is persisted between runs.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boisvert/sylva/internal/engine/detect"
	"github.com/boisvert/sylva/internal/engine/indicators"
	"github.com/boisvert/sylva/internal/engine/recommend"
	"github.com/boisvert/sylva/internal/engine/risk"
	"github.com/boisvert/sylva/internal/engine/species"
	"github.com/boisvert/sylva/internal/engine/summary"
	"github.com/boisvert/sylva/internal/model"
)

// Version stamps every report.
const Version = "0.4.1"

// Input is one diagnostic request. Observations and Climate are
// optional; the inventory may be empty but must be well-formed.
type Input struct {
	Inventory    model.Inventory     `json:"inventory"`
	Observations *model.Observations `json:"additional_symptoms,omitempty"`
	Climate      *model.Climate      `json:"climate_data,omitempty"`
}

// Engine is the direct (single-pass) diagnostic analyzer. Safe for
// concurrent use: it holds only the immutable catalog and configuration.
type Engine struct {
	catalog    []model.IssueDefinition
	detector   *detect.Detector
	thresholds indicators.Thresholds
	version    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinConfidence overrides the detector's emission threshold.
func WithMinConfidence(c float64) Option {
	return func(e *Engine) { e.detector = detect.New(c) }
}

// WithIndicatorThresholds overrides the critical-flag cutoffs.
func WithIndicatorThresholds(th indicators.Thresholds) Option {
	return func(e *Engine) { e.thresholds = th }
}

// WithVersion overrides the version stamped into report metadata.
func WithVersion(v string) Option {
	return func(e *Engine) { e.version = v }
}

// New creates an Engine over an already-resolved, immutable catalog.
// Catalog loading and persistence live with the external collaborator.
func New(catalog []model.IssueDefinition, opts ...Option) *Engine {
	e := &Engine{
		catalog:    catalog,
		detector:   detect.New(detect.DefaultMinConfidence),
		thresholds: indicators.DefaultThresholds(),
		version:    Version,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's issue catalog in its canonical order.
func (e *Engine) Catalog() []model.IssueDefinition {
	return e.catalog
}

// Thresholds returns the critical-flag cutoffs in use.
func (e *Engine) Thresholds() indicators.Thresholds {
	return e.thresholds
}

// Analyze runs the full diagnostic chain on one input.
func (e *Engine) Analyze(ctx context.Context, in Input) (*model.Report, error) {
	start := time.Now()

	if err := in.Inventory.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trees := in.Inventory.Items
	speciesHealth := species.Aggregate(trees)
	inds := indicators.Count(trees).Finalize(in.Observations, e.thresholds)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agg := detect.Aggregate(trees)
	issues := e.DetectIssues(agg, in.Inventory.SpeciesSet(), len(trees), in.Climate)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.ComposeReport(in, speciesHealth, inds, issues, start), nil
}

// DetectIssues runs catalog matching on pre-built symptom aggregates.
// Exposed for the batched execution path, which aggregates per batch.
func (e *Engine) DetectIssues(agg *detect.AggregateSet, speciesSet map[string]struct{}, treeCount int, climate *model.Climate) []model.DetectedIssue {
	return e.detector.Detect(e.catalog, agg, speciesSet, treeCount, climate)
}

// ComposeReport runs the tail of the chain (risk, recommendations,
// summary) and assembles the report with run metadata. The batched path
// calls this once on merged stage outputs.
func (e *Engine) ComposeReport(in Input, speciesHealth map[string]model.SpeciesSummary, inds model.Indicators, issues []model.DetectedIssue, start time.Time) *model.Report {
	assessment := risk.Evaluate(issues, speciesHealth, in.Climate)
	recs := recommend.Build(issues, assessment)
	synopsis := summary.Generate(assessment, issues, inds)

	if issues == nil {
		issues = []model.DetectedIssue{}
	}

	return &model.Report{
		ID:              uuid.NewString(),
		SpeciesHealth:   speciesHealth,
		Indicators:      inds,
		DetectedIssues:  issues,
		Risk:            assessment,
		Recommendations: recs,
		Summary:         synopsis,
		Context:         analysisContext(in),
		Metadata: model.Metadata{
			GeneratedAt:   time.Now().UTC(),
			Duration:      time.Since(start).Seconds(),
			EngineVersion: e.version,
		},
	}
}

// analysisContext embeds a filtered view of the caller-supplied context:
// only whitelisted climate keys are echoed back for traceability.
func analysisContext(in Input) *model.AnalysisContext {
	if in.Climate == nil && in.Observations == nil {
		return nil
	}

	ctx := &model.AnalysisContext{Observations: in.Observations}
	if c := in.Climate; c != nil {
		climate := make(map[string]float64)
		put := func(key string, v *float64) {
			if v != nil {
				climate[key] = *v
			}
		}
		put("drought_index", c.DroughtIndex)
		put("temperature_anomaly", c.TemperatureAnomaly)
		put("min_temperature", c.MinTemperature)
		put("drought_trend", c.DroughtTrend)
		put("temperature_trend", c.TemperatureTrend)
		put("precipitation_trend", c.PrecipitationTrend)
		if len(climate) > 0 {
			ctx.Climate = climate
		}
	}
	return ctx
}
