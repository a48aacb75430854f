// Package indicators computes population-wide rate indicators and
// critical-threshold flags from tree records, with optional field
// observations that can only raise a computed rate.
package indicators

import "github.com/boisvert/sylva/internal/model"

// Canonical keyword families for the four symptom-derived rates.
// Matching is folded substring containment in either direction.
var (
	defoliationKeywords = []string{
		"defoliation", "perte de feuilles", "perte d'aiguilles",
		"chute des aiguilles", "chute des feuilles",
	}
	discolorationKeywords = []string{
		"jaunissement", "decoloration", "discoloration",
		"rougissement", "brunissement", "chlorose",
	}
	pestKeywords = []string{
		"insecte", "chenille", "scolyte", "processionnaire",
		"galerie", "larve", "perforation", "nid",
	}
	barkKeywords = []string{
		"ecorce", "bark", "resine", "decollement",
	}
)

// Thresholds are the critical-flag cutoffs for each indicator.
type Thresholds struct {
	Defoliation       float64
	Discoloration     float64
	PestPresence      float64
	BarkDamage        float64
	CrownTransparency float64
	Mortality         float64
}

// DefaultThresholds returns the standard sanitary cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Defoliation:       0.25,
		Discoloration:     0.20,
		PestPresence:      0.10,
		BarkDamage:        0.15,
		CrownTransparency: 0.35,
		Mortality:         0.10,
	}
}

// Tally holds raw indicator counts. Mergeable across batches.
type Tally struct {
	Trees             int
	Defoliation       int
	Discoloration     int
	PestPresence      int
	BarkDamage        int
	Dead              int
	TransparencySum   float64
	TransparencyCount int
}

// Count tallies indicator occurrences over tree records. A tree counts
// at most once per keyword family.
func Count(trees []model.Tree) Tally {
	var t Tally
	t.Trees = len(trees)
	for _, tree := range trees {
		var defol, discol, pest, bark bool
		for _, s := range tree.Symptoms {
			if !defol && matchesFamily(s.Name, defoliationKeywords) {
				defol = true
			}
			if !discol && matchesFamily(s.Name, discolorationKeywords) {
				discol = true
			}
			if !pest && matchesFamily(s.Name, pestKeywords) {
				pest = true
			}
			if !bark && matchesFamily(s.Name, barkKeywords) {
				bark = true
			}
		}
		if defol {
			t.Defoliation++
		}
		if discol {
			t.Discoloration++
		}
		if pest {
			t.PestPresence++
		}
		if bark {
			t.BarkDamage++
		}
		if tree.Dead() {
			t.Dead++
		}
		if tree.CrownTransparency != nil {
			t.TransparencySum += *tree.CrownTransparency
			t.TransparencyCount++
		}
	}
	return t
}

// Merge adds another tally's counts into this one.
func (t *Tally) Merge(o Tally) {
	t.Trees += o.Trees
	t.Defoliation += o.Defoliation
	t.Discoloration += o.Discoloration
	t.PestPresence += o.PestPresence
	t.BarkDamage += o.BarkDamage
	t.Dead += o.Dead
	t.TransparencySum += o.TransparencySum
	t.TransparencyCount += o.TransparencyCount
}

// Finalize turns raw counts into indicators, applying observation
// overrides and critical flags. Zero trees yields all-nil rates and a
// pristine global health index.
func (t Tally) Finalize(obs *model.Observations, th Thresholds) model.Indicators {
	var ind model.Indicators
	if t.Trees == 0 {
		ind.GlobalHealthIndex = 10
		return ind
	}

	n := float64(t.Trees)
	ind.DefoliationRate = overridden(float64(t.Defoliation)/n, observation(obs, func(o *model.Observations) *model.RateObservation { return o.Defoliation }))
	ind.DiscolorationRate = overridden(float64(t.Discoloration)/n, observation(obs, func(o *model.Observations) *model.RateObservation { return o.Discoloration }))
	ind.PestPresenceRate = overridden(float64(t.PestPresence)/n, observation(obs, func(o *model.Observations) *model.RateObservation { return o.PestPresence }))
	ind.BarkDamageRate = overridden(float64(t.BarkDamage)/n, observation(obs, func(o *model.Observations) *model.RateObservation { return o.BarkDamage }))

	mort := float64(t.Dead) / n
	ind.MortalityRate = &mort

	if t.TransparencyCount > 0 {
		avg := t.TransparencySum / float64(t.TransparencyCount)
		ind.CrownTransparencyAvg = &avg
	}

	ind.Critical = criticalFlags(ind, th)
	ind.GlobalHealthIndex = model.Clamp10(10 - 2*float64(len(ind.Critical)))
	return ind
}

// observation safely projects one override out of a possibly-nil set.
func observation(obs *model.Observations, pick func(*model.Observations) *model.RateObservation) *model.RateObservation {
	if obs == nil {
		return nil
	}
	return pick(obs)
}

// overridden applies max(computed, override) when the override is marked
// observed. Overrides only raise a rate, never lower it.
func overridden(computed float64, o *model.RateObservation) *float64 {
	rate := computed
	if o != nil && o.Observed && o.Rate > rate {
		rate = model.Clamp01(o.Rate)
	}
	return &rate
}

// criticalFlags compares each non-nil rate to its threshold. Order is
// fixed so downstream rendering is deterministic.
func criticalFlags(ind model.Indicators, th Thresholds) []string {
	var flags []string
	check := func(rate *float64, threshold float64, name string) {
		if rate != nil && *rate > threshold {
			flags = append(flags, name)
		}
	}
	check(ind.DefoliationRate, th.Defoliation, "defoliation")
	check(ind.DiscolorationRate, th.Discoloration, "discoloration")
	check(ind.PestPresenceRate, th.PestPresence, "pest_presence")
	check(ind.BarkDamageRate, th.BarkDamage, "bark_damage")
	check(ind.CrownTransparencyAvg, th.CrownTransparency, "crown_transparency")
	check(ind.MortalityRate, th.Mortality, "mortality")
	return flags
}

func matchesFamily(name string, keywords []string) bool {
	for _, kw := range keywords {
		if model.FoldContains(name, kw) {
			return true
		}
	}
	return false
}
