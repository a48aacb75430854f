// Package species summarizes per-species sanitary condition from raw
// tree records. The tally is mergeable so the batched execution path can
// combine partial tallies with order-independent sums.
package species

import (
	"sort"

	"github.com/boisvert/sylva/internal/model"
)

// prevalenceFloor excludes symptoms affecting 5% of a group or fewer.
const prevalenceFloor = 0.05

// maxTopSymptoms caps the ranked symptom list per species.
const maxTopSymptoms = 5

// group accumulates per-species sums.
type group struct {
	name          string // display name, first occurrence wins
	count         int
	scoreSum      float64
	vigorSum      float64
	vigorCount    int
	symptomCounts map[string]int
	symptomNames  map[string]string // folded key -> display name
}

// Tally accumulates tree records grouped by species.
type Tally struct {
	groups map[string]*group
	order  []string
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{groups: make(map[string]*group)}
}

// Add folds one tree record into the tally.
func (t *Tally) Add(tree model.Tree) {
	key := model.Fold(tree.Species)
	g, ok := t.groups[key]
	if !ok {
		g = &group{
			name:          tree.Species,
			symptomCounts: make(map[string]int),
			symptomNames:  make(map[string]string),
		}
		t.groups[key] = g
		t.order = append(t.order, key)
	}

	g.count++
	g.scoreSum += tree.DerivedHealthScore()
	if tree.VigorIndex != nil {
		g.vigorSum += *tree.VigorIndex
		g.vigorCount++
	}

	// Count each symptom at most once per tree.
	seen := make(map[string]struct{}, len(tree.Symptoms))
	for _, s := range tree.Symptoms {
		sk := model.Fold(s.Name)
		if _, dup := seen[sk]; dup {
			continue
		}
		seen[sk] = struct{}{}
		if _, known := g.symptomCounts[sk]; !known {
			g.symptomNames[sk] = s.Name
		}
		g.symptomCounts[sk]++
	}
}

// Merge folds another tally into this one. Order-independent.
func (t *Tally) Merge(other *Tally) {
	for _, key := range other.order {
		og := other.groups[key]
		g, ok := t.groups[key]
		if !ok {
			g = &group{
				name:          og.name,
				symptomCounts: make(map[string]int),
				symptomNames:  make(map[string]string),
			}
			t.groups[key] = g
			t.order = append(t.order, key)
		}
		g.count += og.count
		g.scoreSum += og.scoreSum
		g.vigorSum += og.vigorSum
		g.vigorCount += og.vigorCount
		for sk, n := range og.symptomCounts {
			if _, known := g.symptomCounts[sk]; !known {
				g.symptomNames[sk] = og.symptomNames[sk]
			}
			g.symptomCounts[sk] += n
		}
	}
}

// Summarize finalizes the tally into per-species summaries, keyed by the
// species display name. Empty tally yields an empty (non-nil) mapping.
func (t *Tally) Summarize() map[string]model.SpeciesSummary {
	out := make(map[string]model.SpeciesSummary, len(t.groups))
	for _, key := range t.order {
		g := t.groups[key]
		avg := g.scoreSum / float64(g.count)

		s := model.SpeciesSummary{
			TreeCount:      g.count,
			AvgHealthScore: model.Clamp10(avg),
			Status:         StatusBand(avg),
			TopSymptoms:    topSymptoms(g),
		}
		if g.vigorCount > 0 {
			v := g.vigorSum / float64(g.vigorCount)
			s.AvgVigorIndex = &v
		}
		out[g.name] = s
	}
	return out
}

// Aggregate is the one-shot form used by the direct path.
func Aggregate(trees []model.Tree) map[string]model.SpeciesSummary {
	t := NewTally()
	for _, tree := range trees {
		t.Add(tree)
	}
	return t.Summarize()
}

// StatusBand maps an average 0-10 health score to a qualitative band.
func StatusBand(score float64) string {
	switch {
	case score < 4:
		return "Critical"
	case score < 6:
		return "Poor"
	case score < 7.5:
		return "Medium"
	default:
		return "Good"
	}
}

// topSymptoms ranks the group's symptoms above the prevalence floor,
// highest prevalence first, ties broken by name for determinism.
func topSymptoms(g *group) []model.SymptomPrevalence {
	var ranked []model.SymptomPrevalence
	for sk, n := range g.symptomCounts {
		p := float64(n) / float64(g.count)
		if p <= prevalenceFloor {
			continue
		}
		ranked = append(ranked, model.SymptomPrevalence{Name: g.symptomNames[sk], Prevalence: p})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Prevalence != ranked[j].Prevalence {
			return ranked[i].Prevalence > ranked[j].Prevalence
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > maxTopSymptoms {
		ranked = ranked[:maxTopSymptoms]
	}
	return ranked
}
