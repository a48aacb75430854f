package model

// IssueCategory classifies a catalog entry.
type IssueCategory string

const (
	CategoryDisease       IssueCategory = "disease"
	CategoryPest          IssueCategory = "pest"
	CategoryAbiotic       IssueCategory = "abiotic"
	CategoryPhysiological IssueCategory = "physiological"
)

// Treatment is one remediation option attached to a catalog entry.
type Treatment struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Efficacy    float64 `json:"efficacy" yaml:"efficacy"` // [0,1]
	CostTier    string  `json:"cost_tier,omitempty" yaml:"cost_tier,omitempty"`
}

// IssueDefinition is one reference catalog entry. Immutable for the
// engine's lifetime; detection never mutates it.
type IssueDefinition struct {
	ID                 string        `json:"id" yaml:"id"`
	Name               string        `json:"name" yaml:"name"`
	Category           IssueCategory `json:"category" yaml:"category"`
	Severity           float64       `json:"severity" yaml:"severity"`                       // [0,1]
	BaselineConfidence float64       `json:"baseline_confidence" yaml:"baseline_confidence"` // [0,1]
	AffectedSpecies    []string      `json:"affected_species" yaml:"affected_species"`
	Symptoms           []string      `json:"symptoms" yaml:"symptoms"` // canonical signature, ordered
	Description        string        `json:"description,omitempty" yaml:"description,omitempty"`
	Treatments         []Treatment   `json:"treatments,omitempty" yaml:"treatments,omitempty"`
	Prevention         []string      `json:"prevention,omitempty" yaml:"prevention,omitempty"`
	SpreadingRisk      float64       `json:"spreading_risk" yaml:"spreading_risk"` // [0,1]
	References         []string      `json:"references,omitempty" yaml:"references,omitempty"`
}

// AffectsAnySpecies reports whether the definition carries the
// "all species" wildcard.
func (d IssueDefinition) AffectsAnySpecies() bool {
	for _, s := range d.AffectedSpecies {
		switch Fold(s) {
		case "all", "all species", "toutes", "toutes especes":
			return true
		}
	}
	return false
}

// Applies reports whether the definition is relevant to an inventory
// whose folded species names form speciesSet.
func (d IssueDefinition) Applies(speciesSet map[string]struct{}) bool {
	if d.AffectsAnySpecies() {
		return true
	}
	for _, s := range d.AffectedSpecies {
		if _, ok := speciesSet[Fold(s)]; ok {
			return true
		}
	}
	return false
}

// DetectedIssue is an immutable snapshot of a catalog entry plus the
// run-specific adjusted confidence.
type DetectedIssue struct {
	IssueDefinition `yaml:",inline"`
	Confidence      float64 `json:"confidence" yaml:"confidence"` // [0,1]
}
