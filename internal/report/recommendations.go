package report

// Recommendation is a strategic action item of the report. The list is
// static and does not depend on the scores.
type Recommendation struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Priority    string `json:"priority" yaml:"priority"`
	Timeline    string `json:"timeline" yaml:"timeline"`
	Effort      string `json:"effort" yaml:"effort"`
}

var recommendations = []Recommendation{
	{
		Title:       "Establish a data integrity programme",
		Description: "Roll out ALCOA+ governance, audit trail review and periodic data integrity audits across GxP systems.",
		Priority:    "High",
		Timeline:    "0-3 months",
		Effort:      "Medium",
	},
	{
		Title:       "Adopt risk-based computer system validation",
		Description: "Move to a GAMP 5 aligned CSV/CSA approach that focuses testing effort on patient and product risk.",
		Priority:    "High",
		Timeline:    "0-6 months",
		Effort:      "High",
	},
	{
		Title:       "Digitalize the quality management system",
		Description: "Consolidate deviations, CAPA, change control and documents in a validated eQMS.",
		Priority:    "High",
		Timeline:    "3-9 months",
		Effort:      "High",
	},
	{
		Title:       "Harmonize training management",
		Description: "Introduce role-based curricula in an LMS with automated assignment and effectiveness checks.",
		Priority:    "Medium",
		Timeline:    "3-6 months",
		Effort:      "Medium",
	},
	{
		Title:       "Strengthen supplier oversight",
		Description: "Risk-rank suppliers, complete quality agreements and schedule audits for critical vendors, including cloud providers.",
		Priority:    "Medium",
		Timeline:    "6-12 months",
		Effort:      "Medium",
	},
	{
		Title:       "Build continuous inspection readiness",
		Description: "Run mock inspections, keep a live inspection readiness dashboard and track findings to closure.",
		Priority:    "Medium",
		Timeline:    "6-12 months",
		Effort:      "Low",
	},
}

// Recommendations returns the fixed recommendation list.
func Recommendations() []Recommendation {
	out := make([]Recommendation, len(recommendations))
	copy(out, recommendations)
	return out
}
