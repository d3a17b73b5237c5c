package report

// Framework is a regulatory framework the compliance estimate is projected
// onto.
type Framework struct {
	Name        string
	Breakpoints []Breakpoint // Descending by MinScore, last entry at 0
	Offset      int
}

// Breakpoint maps a minimum framework score to an expected gap count.
type Breakpoint struct {
	MinScore int
	Gaps     int
}

// ComplianceEstimate is the projected score of one framework.
//
// The estimate is a heuristic extrapolation from the overall maturity score
// using fixed per-framework offsets. It is not a measured compliance level.
type ComplianceEstimate struct {
	Framework string `json:"framework" yaml:"framework"`
	Score     int    `json:"score" yaml:"score"`
	Gaps      int    `json:"gaps" yaml:"gaps"`
}

var frameworks = []Framework{
	{Name: "FDA 21 CFR Part 11", Offset: 5, Breakpoints: []Breakpoint{{85, 1}, {70, 3}, {50, 6}, {0, 9}}},
	{Name: "EU GMP Annex 11", Offset: 0, Breakpoints: []Breakpoint{{85, 1}, {70, 4}, {50, 7}, {0, 10}}},
	{Name: "GAMP 5", Offset: -5, Breakpoints: []Breakpoint{{80, 2}, {65, 4}, {45, 7}, {0, 11}}},
	{Name: "ICH Q9/Q10", Offset: 3, Breakpoints: []Breakpoint{{85, 1}, {70, 2}, {50, 5}, {0, 8}}},
	{Name: "ISO 13485", Offset: -3, Breakpoints: []Breakpoint{{80, 2}, {60, 5}, {40, 8}, {0, 12}}},
	{Name: "MHRA GxP Data Integrity", Offset: -8, Breakpoints: []Breakpoint{{80, 2}, {60, 5}, {40, 9}, {0, 13}}},
}

// Frameworks returns the fixed framework table.
func Frameworks() []Framework {
	out := make([]Framework, len(frameworks))
	copy(out, frameworks)
	return out
}

// Estimate projects an overall score onto the framework.
func (f Framework) Estimate(overall int) ComplianceEstimate {
	score := clamp(overall+f.Offset, 0, 100)
	gaps := 0
	for _, bp := range f.Breakpoints {
		if score >= bp.MinScore {
			gaps = bp.Gaps
			break
		}
	}
	return ComplianceEstimate{Framework: f.Name, Score: score, Gaps: gaps}
}

// EstimateCompliance projects an overall score onto every framework.
func EstimateCompliance(overall int) []ComplianceEstimate {
	out := make([]ComplianceEstimate, 0, len(frameworks))
	for _, f := range frameworks {
		out = append(out, f.Estimate(overall))
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
