// Package risk blends detected issues and species health into current
// and projected risk scores with ranked contributing factors.
package risk

import (
	"fmt"
	"sort"

	"github.com/boisvert/sylva/internal/model"
)

// Priority-issue urgency bands. French labels are the operational
// vocabulary of the field teams consuming the priority list.
const (
	UrgencyImmediate = "Immédiate"
	UrgencyHigh      = "Élevée"
	UrgencyModerate  = "Modérée"
)

// Evaluate produces the full risk assessment for one run.
func Evaluate(issues []model.DetectedIssue, speciesHealth map[string]model.SpeciesSummary, climate *model.Climate) model.RiskAssessment {
	current := currentScore(issues, speciesHealth)
	future, factors := futureScore(current, issues, climate)
	health := overallHealth(current, speciesHealth)

	return model.RiskAssessment{
		OverallHealthScore: health,
		HealthStatus:       HealthStatusBand(health),
		Current: model.CurrentRisk{
			Score:          current,
			Level:          LevelBand(current),
			PriorityIssues: priorityIssues(issues),
		},
		Future: model.FutureRisk{
			Score:     future,
			Level:     LevelBand(future),
			Evolution: future - current,
			Factors:   factors,
		},
		Factors: riskFactors(issues, speciesHealth),
	}
}

// currentScore derives the present-state risk. Without detected issues
// it falls back to the species-health deficit; with issues it is the
// confidence-weighted severity average, blended 70/30 with the species
// deficit when species data exists.
func currentScore(issues []model.DetectedIssue, speciesHealth map[string]model.SpeciesSummary) float64 {
	speciesRisk, hasSpecies := speciesDeficit(speciesHealth)

	if len(issues) == 0 {
		if !hasSpecies {
			return 0
		}
		return model.Clamp01(speciesRisk)
	}

	var weighted, weights float64
	for _, iss := range issues {
		sev := iss.Severity
		if iss.SpreadingRisk > 0.7 {
			sev *= 1.3
		}
		weighted += sev * iss.Confidence
		weights += iss.Confidence
	}
	score := 0.0
	if weights > 0 {
		score = weighted / weights
	}
	if hasSpecies {
		score = 0.7*score + 0.3*speciesRisk
	}
	return model.Clamp01(score)
}

// speciesDeficit is 1 − average(health/10) over species groups.
func speciesDeficit(speciesHealth map[string]model.SpeciesSummary) (float64, bool) {
	if len(speciesHealth) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range speciesHealth {
		sum += s.AvgHealthScore / 10
	}
	return model.Clamp01(1 - sum/float64(len(speciesHealth))), true
}

// futureScore projects the current risk along issue-spread and climate
// trends. Returns the projected score and the named evolution factors.
func futureScore(current float64, issues []model.DetectedIssue, climate *model.Climate) (float64, []string) {
	score := current
	var factors []string

	spreading := 0
	for _, iss := range issues {
		if iss.Confidence > 0.5 && iss.SpreadingRisk > 0.6 {
			score += 0.10
			spreading++
			factors = append(factors, fmt.Sprintf("spread of %s", iss.Name))
		}
	}

	if climate != nil {
		if climate.DroughtTrend != nil && *climate.DroughtTrend > 0.3 {
			score += 0.15
			factors = append(factors, "worsening drought trend")
		}
		if climate.TemperatureTrend != nil && *climate.TemperatureTrend > 0.5 {
			score += 0.10
			factors = append(factors, "rising temperature trend")
		}
		if climate.PrecipitationTrend != nil && *climate.PrecipitationTrend < -0.2 {
			score += 0.10
			factors = append(factors, "declining precipitation trend")
		}
	}

	if spreading == 0 && len(issues) <= 1 {
		score -= 0.10
		factors = append(factors, "no spreading issue detected")
	}

	return model.Clamp01(score), factors
}

// riskFactors merges issue-based and species-based contributors, ranked
// by importance descending (ties by name for determinism).
func riskFactors(issues []model.DetectedIssue, speciesHealth map[string]model.SpeciesSummary) []model.RiskFactor {
	var factors []model.RiskFactor

	for _, iss := range issues {
		if iss.Confidence < 0.4 {
			continue
		}
		factors = append(factors, model.RiskFactor{
			Kind:       "issue",
			Name:       iss.Name,
			Importance: model.Clamp01(iss.Severity * iss.Confidence),
			Detail:     fmt.Sprintf("detected with confidence %.2f", iss.Confidence),
		})
	}

	names := make([]string, 0, len(speciesHealth))
	for name := range speciesHealth {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := speciesHealth[name]
		if s.Status != "Critical" && s.Status != "Poor" {
			continue
		}
		factors = append(factors, model.RiskFactor{
			Kind:       "species",
			Name:       name,
			Importance: model.Clamp01((10 - s.AvgHealthScore) / 10),
			Detail:     fmt.Sprintf("%s condition across %d trees", s.Status, s.TreeCount),
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].Importance != factors[j].Importance {
			return factors[i].Importance > factors[j].Importance
		}
		return factors[i].Name < factors[j].Name
	})
	return factors
}

// priorityIssues ranks detected issues for intervention. Low-urgency
// entries are excluded from the returned list.
func priorityIssues(issues []model.DetectedIssue) []model.PriorityIssue {
	var out []model.PriorityIssue
	for _, iss := range issues {
		score := iss.Severity * iss.Confidence
		if iss.SpreadingRisk > 0.7 {
			score *= 1.5
		}
		score = model.Clamp01(score)

		var urgency string
		switch {
		case score >= 0.8:
			urgency = UrgencyImmediate
		case score >= 0.6:
			urgency = UrgencyHigh
		case score >= 0.4:
			urgency = UrgencyModerate
		default:
			continue
		}
		out = append(out, model.PriorityIssue{
			IssueID:       iss.ID,
			IssueName:     iss.Name,
			PriorityScore: score,
			Urgency:       urgency,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

// overallHealth blends risk-derived health with the tree-weighted
// species average when species data exists.
func overallHealth(current float64, speciesHealth map[string]model.SpeciesSummary) float64 {
	riskHealth := (1 - current) * 10
	if len(speciesHealth) == 0 {
		return model.Clamp10(riskHealth)
	}
	var weightedSum float64
	var trees int
	for _, s := range speciesHealth {
		weightedSum += s.AvgHealthScore * float64(s.TreeCount)
		trees += s.TreeCount
	}
	if trees == 0 {
		return model.Clamp10(riskHealth)
	}
	return model.Clamp10(0.6*riskHealth + 0.4*weightedSum/float64(trees))
}

// HealthStatusBand maps a 0-10 health score to its fixed status band.
func HealthStatusBand(score float64) string {
	switch {
	case score >= 8.5:
		return "Excellent"
	case score >= 7:
		return "Good"
	case score >= 5.5:
		return "Satisfactory"
	case score >= 4:
		return "Medium"
	case score >= 2.5:
		return "Poor"
	default:
		return "Critical"
	}
}

// LevelBand maps a [0,1] risk score to its fixed level band.
func LevelBand(score float64) string {
	switch {
	case score < 0.2:
		return "Low"
	case score < 0.4:
		return "Moderate"
	case score < 0.6:
		return "High"
	case score < 0.8:
		return "Very High"
	default:
		return "Critical"
	}
}
