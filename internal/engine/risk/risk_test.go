package risk

import (
	"math"
	"testing"

	"github.com/boisvert/sylva/internal/model"
)

func fp(v float64) *float64 { return &v }

func detected(id string, severity, confidence, spreading float64) model.DetectedIssue {
	return model.DetectedIssue{
		IssueDefinition: model.IssueDefinition{
			ID:            id,
			Name:          id,
			Severity:      severity,
			SpreadingRisk: spreading,
		},
		Confidence: confidence,
	}
}

func healthySpecies(count int, score float64) map[string]model.SpeciesSummary {
	return map[string]model.SpeciesSummary{
		"Pinus sylvestris": {
			TreeCount:      count,
			AvgHealthScore: score,
			Status:         statusFor(score),
		},
	}
}

func statusFor(score float64) string {
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

func almost(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func TestEvaluateEmptyRun(t *testing.T) {
	a := Evaluate(nil, nil, nil)

	almost(t, a.Current.Score, 0, "current risk")
	if a.Current.Level != "Low" {
		t.Errorf("level = %q, want Low", a.Current.Level)
	}
	almost(t, a.OverallHealthScore, 10, "overall health")
	if a.HealthStatus != "Excellent" {
		t.Errorf("status = %q, want Excellent", a.HealthStatus)
	}
}

func TestCurrentRiskFromSpeciesOnly(t *testing.T) {
	// No issues: risk derives from the species health deficit.
	a := Evaluate(nil, healthySpecies(10, 6), nil)
	almost(t, a.Current.Score, 0.4, "current risk")
	if a.Current.Level != "High" {
		t.Errorf("level = %q, want High", a.Current.Level)
	}
}

func TestCurrentRiskBlend(t *testing.T) {
	// One issue severity 0.6, confidence 0.5, no spreading boost.
	// Issue component 0.6; species deficit (10-8)/10 = 0.2;
	// blended 0.7×0.6 + 0.3×0.2 = 0.48.
	issues := []model.DetectedIssue{detected("a", 0.6, 0.5, 0.1)}
	a := Evaluate(issues, healthySpecies(10, 8), nil)
	almost(t, a.Current.Score, 0.48, "current risk")
}

func TestSpreadingSeverityBoost(t *testing.T) {
	base := Evaluate([]model.DetectedIssue{detected("a", 0.6, 0.5, 0.1)}, nil, nil)
	boosted := Evaluate([]model.DetectedIssue{detected("a", 0.6, 0.5, 0.8)}, nil, nil)
	almost(t, base.Current.Score, 0.6, "base score")
	almost(t, boosted.Current.Score, 0.78, "boosted score") // 0.6×1.3
}

func TestFutureRiskAdjustments(t *testing.T) {
	// Spreading issue (+0.10) plus all three climate trends (+0.35).
	issues := []model.DetectedIssue{detected("a", 0.5, 0.6, 0.7)}
	climate := &model.Climate{
		DroughtTrend:       fp(0.5),
		TemperatureTrend:   fp(1.0),
		PrecipitationTrend: fp(-0.4),
	}
	a := Evaluate(issues, nil, climate)

	almost(t, a.Current.Score, 0.5, "current") // spreading 0.7 is not > 0.7, no severity boost
	almost(t, a.Future.Score, model.Clamp01(a.Current.Score+0.45), "future")
	if len(a.Future.Factors) != 4 {
		t.Errorf("evolution factors = %v, want 4", a.Future.Factors)
	}
}

func TestFutureRiskRelaxation(t *testing.T) {
	// Single non-spreading issue: −0.10.
	issues := []model.DetectedIssue{detected("a", 0.5, 0.6, 0.2)}
	a := Evaluate(issues, nil, nil)
	almost(t, a.Future.Score, model.Clamp01(a.Current.Score-0.10), "future")
	almost(t, a.Future.Evolution, a.Future.Score-a.Current.Score, "evolution")
}

func TestRiskFactorsMergedAndRanked(t *testing.T) {
	issues := []model.DetectedIssue{
		detected("minor", 0.5, 0.3, 0), // confidence < 0.4, excluded
		detected("major", 0.9, 0.8, 0), // importance 0.72
	}
	species := map[string]model.SpeciesSummary{
		"Fraxinus excelsior": {TreeCount: 5, AvgHealthScore: 3, Status: "Critical"}, // importance 0.7
		"Pinus sylvestris":   {TreeCount: 5, AvgHealthScore: 8, Status: "Good"},     // excluded
	}
	a := Evaluate(issues, species, nil)

	if len(a.Factors) != 2 {
		t.Fatalf("factors = %+v, want 2", a.Factors)
	}
	if a.Factors[0].Kind != "issue" || a.Factors[0].Name != "major" {
		t.Errorf("top factor = %+v, want issue major", a.Factors[0])
	}
	if a.Factors[1].Kind != "species" || a.Factors[1].Name != "Fraxinus excelsior" {
		t.Errorf("second factor = %+v, want species Fraxinus", a.Factors[1])
	}
	almost(t, a.Factors[0].Importance, 0.72, "issue importance")
	almost(t, a.Factors[1].Importance, 0.7, "species importance")
}

func TestPriorityIssueUrgencyBands(t *testing.T) {
	tests := []struct {
		name      string
		issue     model.DetectedIssue
		want      string
		wantScore float64
	}{
		{"immediate with spreading boost", detected("a", 0.8, 0.7, 0.9), UrgencyImmediate, 0.84}, // 0.56×1.5
		{"high", detected("b", 0.9, 0.7, 0.1), UrgencyHigh, 0.63},
		{"moderate", detected("c", 0.7, 0.6, 0.1), UrgencyModerate, 0.42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Evaluate([]model.DetectedIssue{tt.issue}, nil, nil)
			if len(a.Current.PriorityIssues) != 1 {
				t.Fatalf("priority issues = %v, want 1", a.Current.PriorityIssues)
			}
			p := a.Current.PriorityIssues[0]
			if p.Urgency != tt.want {
				t.Errorf("urgency = %q, want %q", p.Urgency, tt.want)
			}
			almost(t, p.PriorityScore, tt.wantScore, "priority score")
		})
	}

	// Low urgency excluded entirely.
	a := Evaluate([]model.DetectedIssue{detected("low", 0.4, 0.4, 0)}, nil, nil)
	if len(a.Current.PriorityIssues) != 0 {
		t.Errorf("low-urgency issue in priority list: %v", a.Current.PriorityIssues)
	}
}

func TestOverallHealthBlend(t *testing.T) {
	// Current risk 0.48 (see TestCurrentRiskBlend): risk health 5.2,
	// species average 8 ⇒ 0.6×5.2 + 0.4×8 = 6.32.
	issues := []model.DetectedIssue{detected("a", 0.6, 0.5, 0.1)}
	a := Evaluate(issues, healthySpecies(10, 8), nil)
	almost(t, a.OverallHealthScore, 6.32, "overall health")
	if a.HealthStatus != "Satisfactory" {
		t.Errorf("status = %q, want Satisfactory", a.HealthStatus)
	}
}

func TestBands(t *testing.T) {
	levels := []struct {
		score float64
		want  string
	}{
		{0.1, "Low"}, {0.2, "Moderate"}, {0.4, "High"}, {0.6, "Very High"}, {0.8, "Critical"},
	}
	for _, tt := range levels {
		if got := LevelBand(tt.score); got != tt.want {
			t.Errorf("LevelBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}

	statuses := []struct {
		score float64
		want  string
	}{
		{8.5, "Excellent"}, {7, "Good"}, {5.5, "Satisfactory"}, {4, "Medium"}, {2.5, "Poor"}, {1, "Critical"},
	}
	for _, tt := range statuses {
		if got := HealthStatusBand(tt.score); got != tt.want {
			t.Errorf("HealthStatusBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoresStayInRange(t *testing.T) {
	// Pathological catalog values must still clamp.
	issues := []model.DetectedIssue{detected("x", 1.0, 1.0, 1.0)}
	a := Evaluate(issues, healthySpecies(3, 0), &model.Climate{
		DroughtTrend:       fp(1),
		TemperatureTrend:   fp(5),
		PrecipitationTrend: fp(-1),
	})
	for label, v := range map[string]float64{
		"current":   a.Current.Score,
		"future":    a.Future.Score,
		"priority0": a.Current.PriorityIssues[0].PriorityScore,
	} {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v outside [0,1]", label, v)
		}
	}
	if a.OverallHealthScore < 0 || a.OverallHealthScore > 10 {
		t.Errorf("overall health %v outside [0,10]", a.OverallHealthScore)
	}
}
