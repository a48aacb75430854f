package model

import (
	"errors"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestDerivedHealthScore(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
		want float64
	}{
		{"explicit 0-10 scale", Tree{HealthScore: fp(7.5)}, 7.5},
		{"explicit 0-1 scale rescaled", Tree{HealthScore: fp(0.6)}, 6},
		{"boundary 1.0 treated as fraction", Tree{HealthScore: fp(1.0)}, 10},
		{"overshoot clamped", Tree{HealthScore: fp(12)}, 10},
		{"status sain", Tree{HealthStatus: "sain"}, 10},
		{"status healthy with accent-free fold", Tree{HealthStatus: "Healthy"}, 10},
		{"status affaibli", Tree{HealthStatus: "affaibli"}, 6},
		{"status deperissant folded", Tree{HealthStatus: "Dépérissant"}, 3},
		{"status mort", Tree{HealthStatus: "mort"}, 0},
		{"no information assumed fair", Tree{}, 8},
		{"score wins over status", Tree{HealthStatus: "mort", HealthScore: fp(9)}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.DerivedHealthScore(); got != tt.want {
				t.Errorf("DerivedHealthScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Inventory{Items: []Tree{
		{Species: "Pinus sylvestris", Diameter: 32, Height: 18},
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid inventory: %v", err)
	}

	if err := (Inventory{}).Validate(); err != nil {
		t.Fatalf("Validate() on empty inventory should pass: %v", err)
	}

	tests := []struct {
		name string
		inv  Inventory
	}{
		{"missing species", Inventory{Items: []Tree{{Diameter: 10, Height: 5}}}},
		{"negative diameter", Inventory{Items: []Tree{{Species: "x", Diameter: -1}}}},
		{"crown transparency out of range", Inventory{Items: []Tree{{Species: "x", CrownTransparency: fp(1.4)}}}},
		{"symptom without name", Inventory{Items: []Tree{{Species: "x", Symptoms: []SymptomOccurrence{{}}}}}},
		{"symptom severity out of range", Inventory{Items: []Tree{{Species: "x", Symptoms: []SymptomOccurrence{{Name: "défoliation", Severity: fp(2)}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inv.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidInventory) {
				t.Errorf("error %v is not ErrInvalidInventory", err)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Défoliation", "defoliation"},
		{"JAUNISSEMENT", "jaunissement"},
		{"Écorce  ", "ecorce"},
		{"Sécheresse", "secheresse"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldContains(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Défoliation sévère", "défoliation", true},
		{"defoliation", "Défoliation sévère", true}, // either direction
		{"jaunissement", "écorce", false},
		{"", "défoliation", false},
	}
	for _, tt := range tests {
		if got := FoldContains(tt.a, tt.b); got != tt.want {
			t.Errorf("FoldContains(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAffectsAnySpecies(t *testing.T) {
	def := IssueDefinition{AffectedSpecies: []string{"toutes espèces"}}
	if !def.AffectsAnySpecies() {
		t.Error("French wildcard not recognized")
	}
	def = IssueDefinition{AffectedSpecies: []string{"all species"}}
	if !def.AffectsAnySpecies() {
		t.Error("English wildcard not recognized")
	}
	def = IssueDefinition{AffectedSpecies: []string{"Pinus sylvestris"}}
	if def.AffectsAnySpecies() {
		t.Error("concrete species treated as wildcard")
	}
}
