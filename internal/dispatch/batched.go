package dispatch

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/boisvert/sylva/internal/engine"
	"github.com/boisvert/sylva/internal/engine/detect"
	"github.com/boisvert/sylva/internal/engine/indicators"
	"github.com/boisvert/sylva/internal/engine/species"
	"github.com/boisvert/sylva/internal/model"
)

// Batched partitions the inventory into independent batches, runs
// indicator tallying and issue detection per batch on a bounded worker
// pool, and merges batch results with order-independent operations
// before the risk stage runs once on the merged result.
//
// Failure policy is fail-fast: the first failing batch cancels the
// shared context and the whole run returns that error. Partial merges
// are never produced.
type Batched struct {
	eng        *engine.Engine
	batchSize  int
	maxWorkers int
}

// batchResult holds the mergeable outputs of one batch.
type batchResult struct {
	species *species.Tally
	ind     indicators.Tally
	issues  []model.DetectedIssue
}

// Analyze runs the batched execution path.
func (b *Batched) Analyze(ctx context.Context, in engine.Input) (*model.Report, error) {
	start := time.Now()

	if err := in.Inventory.Validate(); err != nil {
		return nil, err
	}

	trees := in.Inventory.Items
	batches := partition(trees, b.batchSize)
	results := make([]batchResult, len(batches))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := b.maxWorkers
	if workers > len(batches) {
		workers = len(batches)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res, err := b.processBatch(ctx, batches[idx], in.Climate)
				if err != nil {
					fail(err)
					return
				}
				results[idx] = res
			}
		}()
	}

feed:
	for i := range batches {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	speciesTally := species.NewTally()
	var indTally indicators.Tally
	byID := make(map[string]model.DetectedIssue)
	for _, res := range results {
		speciesTally.Merge(res.species)
		indTally.Merge(res.ind)
		for _, iss := range res.issues {
			if prev, ok := byID[iss.ID]; !ok || iss.Confidence > prev.Confidence {
				byID[iss.ID] = iss
			}
		}
	}

	speciesHealth := speciesTally.Summarize()
	inds := indTally.Finalize(in.Observations, b.eng.Thresholds())
	issues := b.sortedIssues(byID)

	return b.eng.ComposeReport(in, speciesHealth, inds, issues, start), nil
}

// processBatch computes the mergeable stage outputs for one batch,
// using the batch's own tree count for prevalence dampening.
func (b *Batched) processBatch(ctx context.Context, trees []model.Tree, climate *model.Climate) (batchResult, error) {
	if err := ctx.Err(); err != nil {
		return batchResult{}, err
	}

	tally := species.NewTally()
	speciesSet := make(map[string]struct{})
	for _, tree := range trees {
		tally.Add(tree)
		speciesSet[model.Fold(tree.Species)] = struct{}{}
	}

	agg := detect.Aggregate(trees)
	issues := b.eng.DetectIssues(agg, speciesSet, len(trees), climate)

	return batchResult{
		species: tally,
		ind:     indicators.Count(trees),
		issues:  issues,
	}, nil
}

// sortedIssues orders merged issues by confidence descending, with
// catalog order as the stable tie-break.
func (b *Batched) sortedIssues(byID map[string]model.DetectedIssue) []model.DetectedIssue {
	catalogIndex := make(map[string]int, len(b.eng.Catalog()))
	for i, def := range b.eng.Catalog() {
		catalogIndex[def.ID] = i
	}

	issues := make([]model.DetectedIssue, 0, len(byID))
	for _, iss := range byID {
		issues = append(issues, iss)
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Confidence != issues[j].Confidence {
			return issues[i].Confidence > issues[j].Confidence
		}
		return catalogIndex[issues[i].ID] < catalogIndex[issues[j].ID]
	})
	return issues
}

// partition slices trees into contiguous batches of at most size.
func partition(trees []model.Tree, size int) [][]model.Tree {
	var batches [][]model.Tree
	for start := 0; start < len(trees); start += size {
		end := start + size
		if end > len(trees) {
			end = len(trees)
		}
		batches = append(batches, trees[start:end])
	}
	return batches
}
