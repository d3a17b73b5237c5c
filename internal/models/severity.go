package models

// Severity ranks a critical gap for remediation.
type Severity string

// Severity levels used by the gap analysis.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities, lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// Label returns the display label.
func (s Severity) Label() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// SeverityForResponse maps a gap answer to its severity tier. Levels 0 and 1
// are high, 2 is medium. Non-gap answers are low.
func SeverityForResponse(v ResponseValue) Severity {
	switch {
	case v <= MaturityInitial:
		return SeverityHigh
	case v == MaturityDeveloping:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
