// Package detect matches observed symptoms against the reference issue
// catalog and produces confidence-scored candidate issues.
//
// Matching is deliberately fuzzy: folded substring containment in either
// direction between the catalog's canonical symptom descriptors and the
// free-text symptom names observed in the field.
package detect

import (
	"sort"

	"github.com/boisvert/sylva/internal/model"
)

// DefaultMinConfidence gates emission of a detected issue.
const DefaultMinConfidence = 0.2

// defaultSeverity is assumed for symptom occurrences that carry none.
const defaultSeverity = 0.5

// prevalenceGain scales occurrence ratio before capping at 1: a symptom
// seen on a fifth of the stand already counts as fully prevalent.
const prevalenceGain = 5

// Detector scores catalog entries against aggregated observations.
type Detector struct {
	MinConfidence float64
}

// New creates a Detector. A zero threshold falls back to the default.
func New(minConfidence float64) *Detector {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Detector{MinConfidence: minConfidence}
}

// Detect evaluates every catalog definition against the aggregated
// symptoms. The result is sorted by confidence descending; equal
// confidences keep catalog order.
func (d *Detector) Detect(catalog []model.IssueDefinition, agg *AggregateSet, speciesSet map[string]struct{}, treeCount int, climate *model.Climate) []model.DetectedIssue {
	var detected []model.DetectedIssue
	for _, def := range catalog {
		if !def.Applies(speciesSet) {
			continue
		}
		conf := d.score(def, agg, treeCount)
		conf = adjustForClimate(def, conf, climate)
		if conf < d.MinConfidence {
			continue
		}
		detected = append(detected, model.DetectedIssue{IssueDefinition: def, Confidence: conf})
	}
	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})
	return detected
}

// score computes the unadjusted confidence for one definition: signature
// coverage and cumulative match quality averaged, scaled by the entry's
// baseline confidence.
func (d *Detector) score(def model.IssueDefinition, agg *AggregateSet, treeCount int) float64 {
	if len(def.Symptoms) == 0 || treeCount == 0 {
		return 0
	}

	var matched int
	var cumulative float64
	for _, canonical := range def.Symptoms {
		best, ok := agg.BestMatch(canonical, treeCount)
		if !ok {
			continue
		}
		matched++
		cumulative += best
	}

	total := float64(len(def.Symptoms))
	coverage := float64(matched) / total
	quality := cumulative / total
	return model.Clamp01((coverage + quality) / 2 * def.BaselineConfidence)
}

// adjustForClimate applies the named climate adjustment to abiotic,
// climate-sensitive issues. Drought keys on the drought index, frost on
// the minimum temperature. Result clamped to [0,1].
func adjustForClimate(def model.IssueDefinition, conf float64, climate *model.Climate) float64 {
	if climate == nil || def.Category != model.CategoryAbiotic {
		return model.Clamp01(conf)
	}

	if droughtSensitive(def) && climate.DroughtIndex != nil {
		idx := *climate.DroughtIndex
		switch {
		case idx > 0.7:
			conf *= 1.5
		case idx > 0.5:
			conf *= 1.3
		case idx < 0.2:
			conf *= 0.5
		}
	}

	if frostSensitive(def) && climate.MinTemperature != nil {
		min := *climate.MinTemperature
		switch {
		case min < -10:
			conf *= 1.5
		case min < -5:
			conf *= 1.3
		case min > 2:
			conf *= 0.5
		}
	}

	return model.Clamp01(conf)
}

func droughtSensitive(def model.IssueDefinition) bool {
	return model.FoldContains(def.ID, "secheresse") || model.FoldContains(def.ID, "drought") ||
		model.FoldContains(def.Name, "secheresse") || model.FoldContains(def.Name, "drought")
}

func frostSensitive(def model.IssueDefinition) bool {
	return model.FoldContains(def.ID, "gel") || model.FoldContains(def.ID, "frost") ||
		model.FoldContains(def.Name, "gel") || model.FoldContains(def.Name, "frost")
}
