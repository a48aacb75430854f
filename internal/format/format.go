// Package format renders a diagnostic report for the CLI as JSON, YAML,
// or a colored human-readable layout. The engine itself treats the
// report as an opaque value.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/boisvert/sylva/internal/model"
)

// Render writes the report in the requested format: "json", "yaml", or
// "human" (default).
func Render(w io.Writer, r *model.Report, format string) error {
	switch format {
	case "json":
		return renderJSON(w, r)
	case "yaml":
		return renderYAML(w, r)
	default:
		renderHuman(w, r)
		return nil
	}
}

func renderJSON(w io.Writer, r *model.Report) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func renderYAML(w io.Writer, r *model.Report) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func renderHuman(w io.Writer, r *model.Report) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow, color.Bold)
	bad := color.New(color.FgRed, color.Bold)

	statusColor := good
	switch r.Risk.HealthStatus {
	case "Medium", "Satisfactory":
		statusColor = warn
	case "Poor", "Critical":
		statusColor = bad
	}

	header.Fprintln(w, "STAND HEALTH DIAGNOSIS")
	fmt.Fprintf(w, "  Overall health: ")
	statusColor.Fprintf(w, "%s", r.Risk.HealthStatus)
	fmt.Fprintf(w, " (%.1f/10)\n", r.Risk.OverallHealthScore)
	fmt.Fprintf(w, "  Current risk:   %s (%.2f)\n", r.Risk.Current.Level, r.Risk.Current.Score)
	fmt.Fprintf(w, "  Projected risk: %s (%.2f, evolution %+.2f)\n\n",
		r.Risk.Future.Level, r.Risk.Future.Score, r.Risk.Future.Evolution)

	if len(r.DetectedIssues) > 0 {
		header.Fprintln(w, "DETECTED ISSUES")
		for _, iss := range r.DetectedIssues {
			fmt.Fprintf(w, "  - %s (%s) confidence %.2f, severity %.2f\n",
				iss.Name, iss.Category, iss.Confidence, iss.Severity)
		}
		fmt.Fprintln(w)
	}

	if len(r.Risk.Current.PriorityIssues) > 0 {
		header.Fprintln(w, "PRIORITY ISSUES")
		for _, p := range r.Risk.Current.PriorityIssues {
			fmt.Fprintf(w, "  - %s: %s (score %.2f)\n", p.IssueName, p.Urgency, p.PriorityScore)
		}
		fmt.Fprintln(w)
	}

	if len(r.Recommendations.PriorityActions) > 0 {
		header.Fprintln(w, "PRIORITY ACTIONS")
		for _, a := range r.Recommendations.PriorityActions {
			fmt.Fprintf(w, "  - %s (%s)\n", a.Action, a.Deadline)
		}
		fmt.Fprintln(w)
	}

	header.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "  %s\n", r.Summary)
}
