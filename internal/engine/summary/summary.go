// Package summary renders a short natural-language synopsis of a
// diagnostic run as a fixed-order sentence sequence.
package summary

import (
	"fmt"
	"strings"

	"github.com/boisvert/sylva/internal/model"
)

// issueConfidenceFloor gates which issues are named in the synopsis.
const issueConfidenceFloor = 0.6

// maxCriticalLabels caps how many critical indicators are spelled out.
const maxCriticalLabels = 3

// trendFloor is the minimum absolute risk evolution worth a sentence.
const trendFloor = 0.1

// Generate produces the report synopsis.
func Generate(a model.RiskAssessment, issues []model.DetectedIssue, ind model.Indicators) string {
	var sentences []string

	sentences = append(sentences,
		fmt.Sprintf("Stand health is %s (score %.1f/10).", a.HealthStatus, a.OverallHealthScore),
		fmt.Sprintf("Sanitary risk level: %s.", a.Current.Level))

	var named []string
	for _, iss := range issues {
		if iss.Confidence >= issueConfidenceFloor {
			named = append(named, iss.Name)
		}
	}
	switch {
	case len(named) == 1:
		sentences = append(sentences, fmt.Sprintf("Probable issue detected: %s.", named[0]))
	case len(named) > 1:
		sentences = append(sentences, fmt.Sprintf("Probable issues detected: %s.", strings.Join(named, ", ")))
	}

	if len(ind.Critical) > 0 {
		labels := ind.Critical
		if len(labels) > maxCriticalLabels {
			labels = labels[:maxCriticalLabels]
		}
		sentences = append(sentences, fmt.Sprintf("Critical indicators: %s.", strings.Join(labels, ", ")))
	}

	if a.Future.Evolution > trendFloor {
		sentences = append(sentences, "Risk is projected to increase over the coming seasons.")
	} else if a.Future.Evolution < -trendFloor {
		sentences = append(sentences, "Risk is projected to decrease over the coming seasons.")
	}

	sentences = append(sentences, closingSentence(a.OverallHealthScore))
	return strings.Join(sentences, " ")
}

// closingSentence picks the action tier from the health score.
func closingSentence(score float64) string {
	switch {
	case score < 4:
		return "Urgent sanitary intervention is required."
	case score < 6:
		return "A near-term management plan should be established."
	case score < 7.5:
		return "Enhanced monitoring is recommended."
	default:
		return "Routine monitoring is sufficient."
	}
}
