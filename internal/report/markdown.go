package report

import (
	"bytes"
	"fmt"
	"strings"
)

// RenderMarkdown renders a markdown summary of r.
func RenderMarkdown(r *Report) []byte {
	var b bytes.Buffer

	if r.IsDemo() {
		fmt.Fprintf(&b, "> **%s**\n\n", r.Label)
	}
	fmt.Fprintf(&b, "# GxP Compliance Assessment: %s\n\n", r.Company.Name)
	fmt.Fprintf(&b, "- Segment: %s\n", r.Company.Segment)
	fmt.Fprintf(&b, "- Assessment: %s\n", r.Record.ID)
	fmt.Fprintf(&b, "- Completed: %s\n", r.Record.CompletionDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Overall score: **%d%%**\n", r.OverallScore)
	fmt.Fprintf(&b, "- Completion: %d%% (%d of %d areas)\n\n", r.Completion.Percent, r.Completion.AreasCompleted, r.Completion.TotalAreas)

	b.WriteString("## Maturity by Area\n\n")
	b.WriteString("| Area | Weight | Score | Status | Gaps |\n|---|---:|---:|---|---:|\n")
	for _, s := range r.AreaScores {
		fmt.Fprintf(&b, "| %s | %d | %d%% | %s | %d |\n", escapeCell(s.Name), s.Weight, s.Score, s.Status.Label(), s.Gaps)
	}

	b.WriteString("\n## Critical Gaps\n\n")
	if len(r.Gaps) == 0 {
		b.WriteString("No critical gaps were identified.\n")
	}
	for i, g := range r.Gaps {
		fmt.Fprintf(&b, "%d. **%s** (%s)", i+1, g.AreaName, g.Severity.Label())
		if g.Question != "" {
			fmt.Fprintf(&b, ": %s (answer %d)", g.Question, g.Score)
		} else {
			fmt.Fprintf(&b, ": area score %d%%", g.Score)
		}
		fmt.Fprintf(&b, "\n   - Regulation: %s\n   - Recommendation: %s\n   - Responsible: %s\n",
			g.Regulation, g.Recommendation, g.Responsible)
	}

	b.WriteString("\n## Regulatory Compliance Estimate\n\n")
	b.WriteString("| Framework | Score | Expected gaps |\n|---|---:|---:|\n")
	for _, c := range r.Compliance {
		fmt.Fprintf(&b, "| %s | %d%% | %d |\n", c.Framework, c.Score, c.Gaps)
	}
	b.WriteString("\n_Estimated from the overall score with fixed offsets, not a measured compliance level._\n")

	b.WriteString("\n## Systems & Costs\n\n")
	if len(r.Costs.Systems) == 0 {
		b.WriteString("No systems recorded.\n")
	} else {
		b.WriteString("| System | Type | GxP | Annual cost |\n|---|---|---|---:|\n")
		for _, s := range r.Costs.Systems {
			gxp := "No"
			if s.GxPCritical {
				gxp = "Yes"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escapeCell(s.Name), s.Type, gxp, Money(s.AnnualCost))
		}
		fmt.Fprintf(&b, "\nTotal annual cost: **%s**\n", Money(r.Costs.TotalAnnual))
	}

	b.WriteString("\n## Recommendations\n\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "- **%s** (%s priority, %s, effort %s): %s\n", rec.Title, rec.Priority, rec.Timeline, rec.Effort, rec.Description)
	}

	if r.IsDemo() {
		fmt.Fprintf(&b, "\n> **%s**\n", r.Label)
	}
	return b.Bytes()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
