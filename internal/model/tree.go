package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInventory marks structurally invalid input, as opposed to
// semantically empty input (an empty tree list is valid).
var ErrInvalidInventory = errors.New("invalid inventory")

// SymptomOccurrence is one observed symptom on a tree.
type SymptomOccurrence struct {
	Name     string   `json:"name"`
	Severity *float64 `json:"severity,omitempty"` // [0,1], defaults to 0.5 when absent
}

// Tree is one inventory record. Supplied by callers, read-only.
type Tree struct {
	Species           string              `json:"species"`
	Diameter          float64             `json:"diameter"` // cm
	Height            float64             `json:"height"`   // m
	HealthStatus      string              `json:"health_status,omitempty"`
	HealthScore       *float64            `json:"health_score,omitempty"` // 0-10, or 0-1 (rescaled)
	VigorIndex        *float64            `json:"vigor_index,omitempty"`
	CrownTransparency *float64            `json:"crown_transparency,omitempty"` // [0,1]
	Symptoms          []SymptomOccurrence `json:"symptoms,omitempty"`
}

// DerivedHealthScore returns the tree's health on a 0-10 scale.
// An explicit score wins; values at or below 1.0 are treated as a 0-1
// input and rescaled. Otherwise the textual status is mapped, and a tree
// with no health information at all is assumed fair (8).
func (t Tree) DerivedHealthScore() float64 {
	if t.HealthScore != nil {
		s := *t.HealthScore
		if s <= 1.0 {
			s *= 10
		}
		if s < 0 {
			return 0
		}
		if s > 10 {
			return 10
		}
		return s
	}
	switch Fold(t.HealthStatus) {
	case "sain", "healthy", "bon":
		return 10
	case "affaibli", "weakened", "stressed", "stresse":
		return 6
	case "deperissant", "declining":
		return 3
	case "mort", "dead":
		return 0
	default:
		return 8
	}
}

// Dead reports whether the tree counts toward the mortality rate.
func (t Tree) Dead() bool {
	return t.DerivedHealthScore() == 0
}

// Inventory is the stand inventory handed to the engine.
type Inventory struct {
	Items  []Tree   `json:"items"`
	AreaHa *float64 `json:"area,omitempty"`
	Date   string   `json:"date,omitempty"`
	Method string   `json:"method,omitempty"`
}

// Validate surfaces structural errors: a record without a species
// identifier, negative dimensions, or out-of-range fractional values.
// An empty item list is well-formed.
func (inv Inventory) Validate() error {
	for i, t := range inv.Items {
		if t.Species == "" {
			return fmt.Errorf("%w: item %d: missing species", ErrInvalidInventory, i)
		}
		if t.Diameter < 0 || t.Height < 0 {
			return fmt.Errorf("%w: item %d: negative dimension", ErrInvalidInventory, i)
		}
		if t.CrownTransparency != nil && (*t.CrownTransparency < 0 || *t.CrownTransparency > 1) {
			return fmt.Errorf("%w: item %d: crown transparency outside [0,1]", ErrInvalidInventory, i)
		}
		for j, s := range t.Symptoms {
			if s.Name == "" {
				return fmt.Errorf("%w: item %d: symptom %d: missing name", ErrInvalidInventory, i, j)
			}
			if s.Severity != nil && (*s.Severity < 0 || *s.Severity > 1) {
				return fmt.Errorf("%w: item %d: symptom %d: severity outside [0,1]", ErrInvalidInventory, i, j)
			}
		}
	}
	return nil
}

// SpeciesSet returns the set of species present, keyed by folded name.
func (inv Inventory) SpeciesSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range inv.Items {
		set[Fold(t.Species)] = struct{}{}
	}
	return set
}

// RateObservation is a field-observed override for one indicator rate.
// Overrides only ever raise the computed rate, never lower it.
type RateObservation struct {
	Rate     float64 `json:"rate"`
	Observed bool    `json:"observed"`
}

// Observations carries optional field-observation overrides.
type Observations struct {
	Defoliation   *RateObservation `json:"defoliation,omitempty"`
	Discoloration *RateObservation `json:"discoloration,omitempty"`
	PestPresence  *RateObservation `json:"pest_presence,omitempty"`
	BarkDamage    *RateObservation `json:"bark_damage,omitempty"`
	Notes         []string         `json:"notes,omitempty"`
}

// Climate holds pre-computed climate summaries supplied by callers.
// The engine never acquires climate data itself.
type Climate struct {
	DroughtIndex       *float64 `json:"drought_index,omitempty"` // [0,1]
	TemperatureAnomaly *float64 `json:"temperature_anomaly,omitempty"`
	MinTemperature     *float64 `json:"min_temperature,omitempty"` // °C
	DroughtTrend       *float64 `json:"drought_trend,omitempty"`
	TemperatureTrend   *float64 `json:"temperature_trend,omitempty"`
	PrecipitationTrend *float64 `json:"precipitation_trend,omitempty"`
}
