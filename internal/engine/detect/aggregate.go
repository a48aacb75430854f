package detect

import "github.com/boisvert/sylva/internal/model"

// SymptomAggregate accumulates every occurrence of one symptom name
// across the inventory. Ephemeral, rebuilt per run.
type SymptomAggregate struct {
	Name        string
	Count       int
	SeveritySum float64
	Species     map[string]struct{}
}

// AvgSeverity is the mean observed severity for this symptom.
func (a *SymptomAggregate) AvgSeverity() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.SeveritySum / float64(a.Count)
}

// AggregateSet groups symptom aggregates keyed by folded name,
// preserving first-occurrence order.
type AggregateSet struct {
	byKey map[string]*SymptomAggregate
	order []string
}

// Aggregate builds the symptom aggregates for a slice of trees.
func Aggregate(trees []model.Tree) *AggregateSet {
	set := &AggregateSet{byKey: make(map[string]*SymptomAggregate)}
	for _, tree := range trees {
		for _, s := range tree.Symptoms {
			key := model.Fold(s.Name)
			if key == "" {
				continue
			}
			agg, ok := set.byKey[key]
			if !ok {
				agg = &SymptomAggregate{Name: s.Name, Species: make(map[string]struct{})}
				set.byKey[key] = agg
				set.order = append(set.order, key)
			}
			agg.Count++
			sev := defaultSeverity
			if s.Severity != nil {
				sev = *s.Severity
			}
			agg.SeveritySum += sev
			agg.Species[model.Fold(tree.Species)] = struct{}{}
		}
	}
	return set
}

// Merge folds another aggregate set into this one. Order-independent
// with respect to the resulting sums.
func (s *AggregateSet) Merge(other *AggregateSet) {
	for _, key := range other.order {
		oa := other.byKey[key]
		agg, ok := s.byKey[key]
		if !ok {
			agg = &SymptomAggregate{Name: oa.Name, Species: make(map[string]struct{})}
			s.byKey[key] = agg
			s.order = append(s.order, key)
		}
		agg.Count += oa.Count
		agg.SeveritySum += oa.SeveritySum
		for sp := range oa.Species {
			agg.Species[sp] = struct{}{}
		}
	}
}

// Len reports the number of distinct symptom names aggregated.
func (s *AggregateSet) Len() int {
	return len(s.order)
}

// BestMatch finds the best-scoring aggregate for a canonical symptom
// descriptor. The match score dampens low-prevalence symptoms:
// severity_avg × min(1, count/treeCount × prevalenceGain).
func (s *AggregateSet) BestMatch(canonical string, treeCount int) (float64, bool) {
	if treeCount == 0 {
		return 0, false
	}
	best := -1.0
	for _, key := range s.order {
		agg := s.byKey[key]
		if !model.FoldContains(agg.Name, canonical) {
			continue
		}
		prevalence := float64(agg.Count) / float64(treeCount) * prevalenceGain
		if prevalence > 1 {
			prevalence = 1
		}
		score := agg.AvgSeverity() * prevalence
		if score > best {
			best = score
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
