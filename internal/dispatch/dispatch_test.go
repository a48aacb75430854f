package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/boisvert/sylva/internal/catalog"
	"github.com/boisvert/sylva/internal/engine"
	"github.com/boisvert/sylva/internal/model"
)

func fp(v float64) *float64 { return &v }

func newDispatcher(t *testing.T, cfg Config) *Dispatcher {
	t.Helper()
	return New(engine.New(catalog.Default()), cfg)
}

// stand builds n pines; every stride-th tree carries the symptoms, so
// contiguous batches see the same symptom ratio as the whole stand.
func stand(n, stride int, symptoms ...string) model.Inventory {
	items := make([]model.Tree, n)
	for i := range items {
		items[i] = model.Tree{Species: "Pinus sylvestris", Diameter: 28, Height: 14, HealthStatus: "sain"}
		if stride > 0 && i%stride == 0 {
			items[i].HealthStatus = "affaibli"
			for _, s := range symptoms {
				items[i].Symptoms = append(items[i].Symptoms, model.SymptomOccurrence{Name: s, Severity: fp(0.8)})
			}
		}
	}
	return model.Inventory{Items: items}
}

func TestAutoSelectRoutesLargeInventories(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())

	report, err := d.Analyze(context.Background(), engine.Input{Inventory: stand(5000, 3, "défoliation")})
	if err != nil {
		t.Fatalf("Analyze(): %v", err)
	}

	info := report.Metadata.OptimizedAnalyzer
	if info == nil {
		t.Fatal("dispatcher metadata missing")
	}
	if !info.UsedOptimizer {
		t.Error("used_optimizer = false, want true for 5000 trees")
	}
	if info.Forced {
		t.Error("forced = true, want false for auto-selection")
	}
	if info.TreeCount != 5000 {
		t.Errorf("tree_count = %d, want 5000", info.TreeCount)
	}
	if info.ExecutionTime < 0 {
		t.Errorf("execution_time = %v, want >= 0", info.ExecutionTime)
	}
}

func TestAutoSelectKeepsSmallInventoriesDirect(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())

	report, err := d.Analyze(context.Background(), engine.Input{Inventory: stand(10, 0)})
	if err != nil {
		t.Fatalf("Analyze(): %v", err)
	}
	if report.Metadata.OptimizedAnalyzer.UsedOptimizer {
		t.Error("used_optimizer = true for 10 trees, want false")
	}
}

func TestForceStandardOnLargeInventory(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())

	report, err := d.ForceStandard(context.Background(), engine.Input{Inventory: stand(5000, 3, "défoliation")})
	if err != nil {
		t.Fatalf("ForceStandard(): %v", err)
	}
	info := report.Metadata.OptimizedAnalyzer
	if info.UsedOptimizer {
		t.Error("used_optimizer = true, want false when forced standard")
	}
	if !info.Forced {
		t.Error("forced = false, want true")
	}
}

func TestForceOptimizedOnSmallInventory(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())

	report, err := d.ForceOptimized(context.Background(), engine.Input{Inventory: stand(7, 2, "défoliation")})
	if err != nil {
		t.Fatalf("ForceOptimized(): %v", err)
	}
	info := report.Metadata.OptimizedAnalyzer
	if !info.UsedOptimizer || !info.Forced {
		t.Errorf("metadata = %+v, want used_optimizer and forced", info)
	}
}

func TestDirectAndOptimizedAgree(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())
	in := engine.Input{Inventory: stand(1000, 4, "défoliation", "jaunissement")}

	direct, err := d.ForceStandard(context.Background(), in)
	if err != nil {
		t.Fatalf("ForceStandard(): %v", err)
	}
	optimized, err := d.ForceOptimized(context.Background(), in)
	if err != nil {
		t.Fatalf("ForceOptimized(): %v", err)
	}

	ids := func(rep *model.Report) map[string]struct{} {
		set := make(map[string]struct{})
		for _, iss := range rep.DetectedIssues {
			set[iss.ID] = struct{}{}
		}
		return set
	}
	dIDs, oIDs := ids(direct), ids(optimized)
	if len(dIDs) != len(oIDs) {
		t.Fatalf("issue sets differ: direct %v, optimized %v", dIDs, oIDs)
	}
	for id := range dIDs {
		if _, ok := oIDs[id]; !ok {
			t.Errorf("issue %q detected directly but not via batches", id)
		}
	}

	if direct.Risk.HealthStatus != optimized.Risk.HealthStatus {
		t.Errorf("health status differs: %q vs %q", direct.Risk.HealthStatus, optimized.Risk.HealthStatus)
	}

	// Merged indicators are exact: counts are order-independent sums.
	if *direct.Indicators.DefoliationRate != *optimized.Indicators.DefoliationRate {
		t.Errorf("defoliation rate differs: %v vs %v",
			*direct.Indicators.DefoliationRate, *optimized.Indicators.DefoliationRate)
	}
	if direct.SpeciesHealth["Pinus sylvestris"].TreeCount != optimized.SpeciesHealth["Pinus sylvestris"].TreeCount {
		t.Error("species tree counts differ across paths")
	}
}

func TestBatchedEmptyInventory(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())

	report, err := d.ForceOptimized(context.Background(), engine.Input{})
	if err != nil {
		t.Fatalf("ForceOptimized() on empty inventory: %v", err)
	}
	if report.Risk.OverallHealthScore != 10 || report.Risk.HealthStatus != "Excellent" {
		t.Errorf("empty run = %v/%q, want 10/Excellent",
			report.Risk.OverallHealthScore, report.Risk.HealthStatus)
	}
	if report.SpeciesHealth == nil || report.DetectedIssues == nil {
		t.Error("normalized report has nil required fields")
	}
	if report.Summary == "" {
		t.Error("summary empty after normalization")
	}
}

func TestBatchedFailFastOnInvalidInput(t *testing.T) {
	d := newDispatcher(t, DefaultConfig())

	in := engine.Input{Inventory: model.Inventory{Items: []model.Tree{{Diameter: 10}}}}
	_, err := d.ForceOptimized(context.Background(), in)
	if !errors.Is(err, model.ErrInvalidInventory) {
		t.Fatalf("error = %v, want ErrInvalidInventory", err)
	}
}

func TestBatchedHonorsCancelledContext(t *testing.T) {
	d := newDispatcher(t, Config{AutoSelect: true, TreeThreshold: 100, BatchSize: 50, MaxWorkers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.ForceOptimized(ctx, engine.Input{Inventory: stand(500, 5, "défoliation")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestAutoSelectDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoSelect = false
	d := newDispatcher(t, cfg)

	report, err := d.Analyze(context.Background(), engine.Input{Inventory: stand(5000, 0)})
	if err != nil {
		t.Fatalf("Analyze(): %v", err)
	}
	if report.Metadata.OptimizedAnalyzer.UsedOptimizer {
		t.Error("used_optimizer = true with auto-select disabled")
	}
}

func TestPartition(t *testing.T) {
	trees := make([]model.Tree, 10)
	batches := partition(trees, 4)
	if len(batches) != 3 {
		t.Fatalf("partition = %d batches, want 3", len(batches))
	}
	if len(batches[0]) != 4 || len(batches[1]) != 4 || len(batches[2]) != 2 {
		t.Errorf("batch sizes = %d,%d,%d, want 4,4,2", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if len(partition(nil, 4)) != 0 {
		t.Error("partition(nil) produced batches")
	}
}
