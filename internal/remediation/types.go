// Package remediation turns critical gaps into a prioritized action plan.
package remediation

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/gxpassess/internal/models"
)

// PlanVersion is the schema version of generated plans.
const PlanVersion = "1.0"

// Plan is the exported remediation plan for one assessment.
type Plan struct {
	GeneratedAt  time.Time    `yaml:"generated_at"`
	PlanVersion  string       `yaml:"plan_version"`
	AssessmentID string       `yaml:"assessment_id"`
	Company      string       `yaml:"company"`
	Label        string       `yaml:"label,omitempty"`
	Actions      []Action     `yaml:"actions"`
	Metadata     PlanMetadata `yaml:"metadata"`
}

// PlanMetadata summarizes a plan.
type PlanMetadata struct {
	EstimatedTotalEffort string  `yaml:"estimated_total_effort"`
	TotalGaps            int     `yaml:"total_gaps"`
	Actions              int     `yaml:"actions"`
	PriorityScore        float64 `yaml:"priority_score"`
}

// Action is one remediation work package addressing the gaps of an area.
type Action struct {
	ID              string          `yaml:"id"`
	Title           string          `yaml:"title"`
	Area            string          `yaml:"area"`
	Severity        models.Severity `yaml:"severity"`
	Regulation      string          `yaml:"regulation"`
	Responsible     string          `yaml:"responsible"`
	Recommendation  string          `yaml:"recommendation"`
	EstimatedEffort string          `yaml:"estimated_effort"`
	Steps           []string        `yaml:"steps"`
	Resources       []string        `yaml:"resources,omitempty"`
	GapRefs         []string        `yaml:"gap_refs"`
	Priority        int             `yaml:"priority"`
}

// Group is the set of gaps of one area handled by a single action.
type Group struct {
	Area            string
	AreaName        string
	Gaps            []models.Gap
	Priority        int
	EstimatedEffort time.Duration
}

// Priority levels for actions.
const (
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityMedium = 3
	PriorityLow    = 4
)

// EstimateEffort converts a duration of work to a human-readable range.
func EstimateEffort(d time.Duration) string {
	const workday = 8 * time.Hour
	switch {
	case d < workday:
		return "under 1 day"
	case d < 5*workday:
		return "1-5 days"
	case d < 20*workday:
		return "1-4 weeks"
	default:
		return fmt.Sprintf("%d+ weeks", int(d/(5*workday)))
	}
}

// CalculatePriorityScore condenses a plan into a 0-10 urgency score.
func CalculatePriorityScore(actions []Action) float64 {
	if len(actions) == 0 {
		return 0
	}

	var total float64
	for _, a := range actions {
		total += severityScore(a.Severity) * (1 + float64(len(a.GapRefs))*0.1)
	}
	return math.Min(math.Round(total/float64(len(actions))*10)/10, 10)
}

func severityScore(s models.Severity) float64 {
	switch s {
	case models.SeverityHigh:
		return 7.5
	case models.SeverityMedium:
		return 5
	case models.SeverityLow:
		return 2.5
	default:
		return 0
	}
}
