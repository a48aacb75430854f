// Package catalog loads the reference issue catalog from its well-known
// YAML location. A missing or unreadable catalog is never an error:
// the built-in default set is seeded, persisted for the storage
// collaborator, and returned.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/boisvert/sylva/internal/model"
)

// file is the on-disk catalog document.
type file struct {
	Issues []model.IssueDefinition `yaml:"issues"`
}

// Load resolves the catalog at path. On any load or validation failure
// it falls back to the default set (seeding the file when absent) and
// logs the recovery; callers always receive a usable catalog.
func Load(path string) []model.IssueDefinition {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("catalog not found, seeding defaults", "path", path)
			defs := Default()
			if werr := persist(path, defs); werr != nil {
				slog.Warn("could not persist seeded catalog", "path", path, "error", werr)
			}
			return defs
		}
		slog.Warn("catalog unreadable, using defaults", "path", path, "error", err)
		return Default()
	}

	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		slog.Warn("catalog malformed, using defaults", "path", path, "error", err)
		return Default()
	}
	defs, err := sanitize(doc.Issues)
	if err != nil {
		slog.Warn("catalog invalid, using defaults", "path", path, "error", err)
		return Default()
	}
	return defs
}

// sanitize validates structure and clamps every ranged quantity.
// Order is preserved: catalog order is the detector's tie-break.
func sanitize(defs []model.IssueDefinition) ([]model.IssueDefinition, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]struct{}, len(defs))
	out := make([]model.IssueDefinition, 0, len(defs))
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("entry %d: missing id", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = struct{}{}
		if len(d.Symptoms) == 0 {
			return nil, fmt.Errorf("entry %q: empty symptom signature", d.ID)
		}

		d.Severity = model.Clamp01(d.Severity)
		d.BaselineConfidence = model.Clamp01(d.BaselineConfidence)
		d.SpreadingRisk = model.Clamp01(d.SpreadingRisk)
		for j := range d.Treatments {
			d.Treatments[j].Efficacy = model.Clamp01(d.Treatments[j].Efficacy)
		}
		out = append(out, d)
	}
	return out, nil
}

// persist writes the seeded default catalog for reuse.
func persist(path string, defs []model.IssueDefinition) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := yaml.Marshal(file{Issues: defs})
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
