// Package recommend turns detected issues and the risk assessment into
// specific, general, monitoring, and priority-action recommendations.
package recommend

import (
	"fmt"
	"sort"

	"github.com/boisvert/sylva/internal/engine/risk"
	"github.com/boisvert/sylva/internal/model"
)

const (
	specificConfidenceFloor   = 0.3
	monitoringConfidenceFloor = 0.4
	maxTreatments             = 2
	maxPrevention             = 3
)

// Build synthesizes the full recommendation bundle.
func Build(issues []model.DetectedIssue, assessment model.RiskAssessment) model.Recommendations {
	specific := specificRecommendations(issues)
	return model.Recommendations{
		Specific:        specific,
		General:         generalRecommendations(assessment),
		Monitoring:      monitoringPlan(issues, assessment),
		PriorityActions: priorityActions(specific, issues, assessment),
	}
}

// specificRecommendations selects, per credible issue, the two
// highest-efficacy treatments and up to three prevention measures.
func specificRecommendations(issues []model.DetectedIssue) []model.SpecificRecommendation {
	var out []model.SpecificRecommendation
	for _, iss := range issues {
		if iss.Confidence < specificConfidenceFloor {
			continue
		}

		treatments := make([]model.Treatment, len(iss.Treatments))
		copy(treatments, iss.Treatments)
		sort.SliceStable(treatments, func(i, j int) bool {
			return treatments[i].Efficacy > treatments[j].Efficacy
		})
		if len(treatments) > maxTreatments {
			treatments = treatments[:maxTreatments]
		}

		prevention := iss.Prevention
		if len(prevention) > maxPrevention {
			prevention = prevention[:maxPrevention]
		}

		urgency := risk.UrgencyModerate
		if iss.Severity > 0.7 {
			urgency = risk.UrgencyHigh
		}

		out = append(out, model.SpecificRecommendation{
			IssueID:       iss.ID,
			IssueName:     iss.Name,
			Confidence:    iss.Confidence,
			Urgency:       urgency,
			SpreadingRisk: iss.SpreadingRisk,
			Treatments:    treatments,
			Prevention:    prevention,
		})
	}
	return out
}

// generalRecommendations concatenates two independent rule tables: one
// keyed by the current risk score band, one by the health status band.
// The sets overlap by design.
func generalRecommendations(a model.RiskAssessment) []string {
	var out []string

	switch risk.LevelBand(a.Current.Score) {
	case "Critical", "Very High":
		out = append(out,
			"Engage a forest health expert for an on-site sanitary assessment",
			"Restrict timber movement out of the stand until issues are contained")
	case "High":
		out = append(out,
			"Schedule a follow-up field survey within the next month",
			"Prepare a sanitary cutting plan for the most affected plots")
	case "Moderate":
		out = append(out,
			"Increase patrol frequency on the affected plots")
	default:
		out = append(out,
			"Maintain current silvicultural practices")
	}

	switch a.HealthStatus {
	case "Critical", "Poor":
		out = append(out,
			"Prioritize removal of dead and dying stems to limit pest reservoirs",
			"Evaluate regeneration options for heavily degraded areas")
	case "Medium", "Satisfactory":
		out = append(out,
			"Thin weakened groups to improve stand vigor")
	default:
		out = append(out,
			"Preserve stand diversity to maintain resilience")
	}

	return out
}

// monitoringPlan derives surveillance frequency, indicators, and methods.
func monitoringPlan(issues []model.DetectedIssue, a model.RiskAssessment) model.Monitoring {
	var freq string
	switch a.Current.Level {
	case "Very High", "Critical":
		freq = "Quarterly"
	case "High":
		freq = "Semiannual"
	default:
		freq = "Annual"
	}

	var indicators []string
	for _, iss := range issues {
		if iss.Confidence < monitoringConfidenceFloor {
			continue
		}
		indicators = append(indicators, fmt.Sprintf("progression of %s", iss.Name))
		switch iss.Category {
		case model.CategoryPest:
			indicators = append(indicators, "pest population levels")
		case model.CategoryDisease:
			indicators = append(indicators, "symptom spread across neighboring trees")
		case model.CategoryAbiotic:
			if model.FoldContains(iss.Name, "secheresse") || model.FoldContains(iss.Name, "drought") {
				indicators = append(indicators, "soil moisture", "water stress symptoms")
			}
		}
	}

	methods := []string{"visual inspection"}
	for _, iss := range issues {
		if iss.Category == model.CategoryPest && iss.Confidence >= monitoringConfidenceFloor {
			methods = append(methods, "pheromone and insect traps")
			break
		}
	}
	if len(issues) > 2 || a.Current.Score > 0.6 {
		methods = append(methods, "expert consultation")
	}
	for _, iss := range issues {
		if iss.SpreadingRisk > 0.7 {
			methods = append(methods, "infestation mapping")
			break
		}
	}

	return model.Monitoring{
		Frequency:  freq,
		Indicators: dedupe(indicators),
		Methods:    methods,
	}
}

// priorityActions derives time-bound actions from risk level and the
// specific recommendations.
func priorityActions(specific []model.SpecificRecommendation, issues []model.DetectedIssue, a model.RiskAssessment) []model.PriorityAction {
	var actions []model.PriorityAction

	if a.Current.Level == "Very High" || a.Current.Level == "Critical" {
		actions = append(actions, model.PriorityAction{
			Action:      "urgent expert consultation",
			Deadline:    "within 1 week",
			Description: fmt.Sprintf("current sanitary risk is %s (%.2f)", a.Current.Level, a.Current.Score),
		})
	}

	for _, iss := range issues {
		if iss.Severity <= 0.7 || iss.Confidence < 0.6 {
			continue
		}
		if len(iss.Treatments) == 0 {
			continue
		}
		top := iss.Treatments[0]
		for _, t := range iss.Treatments[1:] {
			if t.Efficacy > top.Efficacy {
				top = t
			}
		}
		actions = append(actions, model.PriorityAction{
			Action:      fmt.Sprintf("apply %s against %s", top.Name, iss.Name),
			Deadline:    "within 2 weeks",
			Description: top.Description,
		})
	}

	switch a.Current.Level {
	case "High", "Very High", "Critical":
		actions = append(actions, model.PriorityAction{
			Action:      "set up a monitoring system",
			Deadline:    "within 1 month",
			Description: "permanent sanitary plots with periodic remeasurement",
		})
	}

	for _, rec := range specific {
		if rec.SpreadingRisk > 0.7 {
			actions = append(actions, model.PriorityAction{
				Action:      "containment measures",
				Deadline:    "immediate",
				Description: fmt.Sprintf("limit the spread of %s to adjacent plots", rec.IssueName),
			})
			break
		}
	}

	return actions
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
