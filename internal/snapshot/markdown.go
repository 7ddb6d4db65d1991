package snapshot

import (
	"fmt"
	"strings"

	"github.com/jamesclu/wbs/internal/dates"
	"github.com/jamesclu/wbs/internal/types"
)

// RenderMarkdown formats a diff report as a Markdown document with one
// table per category. Output is fully reproducible: the only dates in
// the body are the two carried by the report, never the wall clock.
func RenderMarkdown(r *Report) string {
	var b strings.Builder

	b.WriteString("# Weekly Task Report\n")
	fmt.Fprintf(&b, "> Snapshot date: %s | Report date: %s\n\n", r.SnapshotDate, r.ReportDate)

	b.WriteString("## Summary\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Added | %d |\n", len(r.Added))
	fmt.Fprintf(&b, "| Removed | %d |\n", len(r.Removed))
	fmt.Fprintf(&b, "| Completed | %d |\n", len(r.Completed))
	fmt.Fprintf(&b, "| Date changes | %d |\n", len(r.DateChanged))
	fmt.Fprintf(&b, "| Status changes | %d |\n", len(r.StatusChanged))
	fmt.Fprintf(&b, "| Delayed | %d |\n", len(r.Delayed))
	b.WriteString("\n")

	if len(r.Added) > 0 {
		b.WriteString("## Added\n")
		b.WriteString("| ID | Task | Owner | Due Date |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, t := range r.Added {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", t.Key(), cell(t.Title), cell(t.Owner), t.DueDate)
		}
		b.WriteString("\n")
	}

	if len(r.Completed) > 0 {
		b.WriteString("## Completed\n")
		b.WriteString("| ID | Task | Owner |\n")
		b.WriteString("|---|---|---|\n")
		for _, t := range r.Completed {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t.Key(), cell(t.Title), cell(t.Owner))
		}
		b.WriteString("\n")
	}

	if len(r.DateChanged) > 0 {
		b.WriteString("## Date Changes\n")
		b.WriteString("| ID | Task | Was | Now |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, d := range r.DateChanged {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", d.Task.Key(), cell(d.Task.Title), d.OldDate, d.NewDate)
		}
		b.WriteString("\n")
	}

	if len(r.StatusChanged) > 0 {
		b.WriteString("## Status Changes\n")
		b.WriteString("| ID | Task | Was | Now |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, s := range r.StatusChanged {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", s.Task.Key(), cell(s.Task.Title), s.OldStatus, s.NewStatus)
		}
		b.WriteString("\n")
	}

	if len(r.Delayed) > 0 {
		b.WriteString("## Delayed\n")
		b.WriteString("| ID | Task | Owner | Due Date | Days Late |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, t := range r.Delayed {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
				t.Key(), cell(t.Title), cell(t.Owner), t.DueDate, delayDays(t, r.ReportDate))
		}
		b.WriteString("\n")
	}

	if len(r.Removed) > 0 {
		b.WriteString("## Removed\n")
		b.WriteString("| ID | Task |\n")
		b.WriteString("|---|---|\n")
		for _, t := range r.Removed {
			fmt.Fprintf(&b, "| %s | %s |\n", t.Key(), cell(t.Title))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func delayDays(t types.Task, reportDate string) int {
	d := dates.DaysBetween(t.DueDate, reportDate)
	if d < 0 {
		return 0
	}
	return d
}

// cell escapes pipe characters so free text cannot break table rows.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
