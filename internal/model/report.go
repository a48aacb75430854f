package model

import "time"

// Clamp01 bounds x to [0,1]. Score arithmetic upstream may overshoot;
// every published confidence/risk quantity passes through here.
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Clamp10 bounds x to [0,10] for health-scale quantities.
func Clamp10(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 10 {
		return 10
	}
	return x
}

// SymptomPrevalence is one ranked symptom within a species group.
type SymptomPrevalence struct {
	Name       string  `json:"name"`
	Prevalence float64 `json:"prevalence"` // fraction of the group's trees
}

// SpeciesSummary is the per-species sanitary condition.
type SpeciesSummary struct {
	TreeCount      int                 `json:"tree_count"`
	AvgHealthScore float64             `json:"avg_health_score"` // 0-10
	Status         string              `json:"status"`
	TopSymptoms    []SymptomPrevalence `json:"top_symptoms,omitempty"`
	AvgVigorIndex  *float64            `json:"avg_vigor_index,omitempty"`
}

// Indicators holds population-wide rate indicators. Rates are nil when
// the inventory has no trees.
type Indicators struct {
	DefoliationRate      *float64 `json:"defoliation_rate"`
	DiscolorationRate    *float64 `json:"discoloration_rate"`
	PestPresenceRate     *float64 `json:"pest_presence_rate"`
	BarkDamageRate       *float64 `json:"bark_damage_rate"`
	CrownTransparencyAvg *float64 `json:"crown_transparency_avg"`
	MortalityRate        *float64 `json:"mortality_rate"`
	Critical             []string `json:"critical_indicators,omitempty"`
	GlobalHealthIndex    float64  `json:"global_health_index"` // [0,10]
}

// PriorityIssue is one entry of the ranked current-risk priority list.
type PriorityIssue struct {
	IssueID       string  `json:"issue_id"`
	IssueName     string  `json:"issue_name"`
	PriorityScore float64 `json:"priority_score"` // [0,1]
	Urgency       string  `json:"urgency"`        // Immédiate / Élevée / Modérée
}

// CurrentRisk is the present-state sanitary risk.
type CurrentRisk struct {
	Score          float64         `json:"score"` // [0,1]
	Level          string          `json:"level"`
	PriorityIssues []PriorityIssue `json:"priority_issues,omitempty"`
}

// FutureRisk is the climate-trend-projected sanitary risk.
type FutureRisk struct {
	Score     float64  `json:"score"` // [0,1]
	Level     string   `json:"level"`
	Evolution float64  `json:"evolution"` // signed, future - current
	Factors   []string `json:"factors,omitempty"`
}

// RiskFactor is one ranked contributor to the stand's risk.
type RiskFactor struct {
	Kind       string  `json:"kind"` // "issue" or "species"
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
	Detail     string  `json:"detail,omitempty"`
}

// RiskAssessment is the blended risk view over a whole run.
type RiskAssessment struct {
	OverallHealthScore float64      `json:"overall_health_score"` // [0,10]
	HealthStatus       string       `json:"health_status"`
	Current            CurrentRisk  `json:"current_risk"`
	Future             FutureRisk   `json:"future_risk"`
	Factors            []RiskFactor `json:"risk_factors,omitempty"`
}

// SpecificRecommendation targets one detected issue.
type SpecificRecommendation struct {
	IssueID       string      `json:"issue_id"`
	IssueName     string      `json:"issue_name"`
	Confidence    float64     `json:"confidence"`
	Urgency       string      `json:"urgency"`
	SpreadingRisk float64     `json:"spreading_risk"`
	Treatments    []Treatment `json:"treatments,omitempty"` // two highest-efficacy
	Prevention    []string    `json:"prevention,omitempty"` // up to three
}

// Monitoring describes the follow-up surveillance plan.
type Monitoring struct {
	Frequency  string   `json:"frequency"`
	Indicators []string `json:"indicators,omitempty"`
	Methods    []string `json:"methods,omitempty"`
}

// PriorityAction is one time-bound management action.
type PriorityAction struct {
	Action      string `json:"action"`
	Deadline    string `json:"deadline"`
	Description string `json:"description,omitempty"`
}

// Recommendations bundles all recommendation tiers.
type Recommendations struct {
	Specific        []SpecificRecommendation `json:"specific,omitempty"`
	General         []string                 `json:"general,omitempty"`
	Monitoring      Monitoring               `json:"monitoring"`
	PriorityActions []PriorityAction         `json:"priority_actions,omitempty"`
}

// DispatchInfo records which execution path produced a report.
type DispatchInfo struct {
	UsedOptimizer bool    `json:"used_optimizer"`
	ExecutionTime float64 `json:"execution_time"` // seconds
	TreeCount     int     `json:"tree_count"`
	Forced        bool    `json:"forced,omitempty"`
}

// Metadata stamps a run.
type Metadata struct {
	GeneratedAt       time.Time     `json:"generated_at"`
	Duration          float64       `json:"duration"` // seconds
	EngineVersion     string        `json:"engine_version"`
	OptimizedAnalyzer *DispatchInfo `json:"optimized_analyzer,omitempty"`
}

// AnalysisContext echoes a filtered view of the caller-supplied context
// for traceability. Only whitelisted climate keys are retained.
type AnalysisContext struct {
	Climate      map[string]float64 `json:"climate,omitempty"`
	Observations *Observations      `json:"observations,omitempty"`
}

// Report is the assembled diagnostic result. Created fresh per call;
// the engine persists nothing itself.
type Report struct {
	ID              string                    `json:"id"`
	SpeciesHealth   map[string]SpeciesSummary `json:"species_health"`
	Indicators      Indicators                `json:"indicators"`
	DetectedIssues  []DetectedIssue           `json:"detected_issues"`
	Risk            RiskAssessment            `json:"risk_assessment"`
	Recommendations Recommendations           `json:"recommendations"`
	Summary         string                    `json:"summary"`
	Context         *AnalysisContext          `json:"context,omitempty"`
	Metadata        Metadata                  `json:"metadata"`
}
