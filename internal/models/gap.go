package models

// GapLevel tells whether a gap was derived from a single answer or from a
// whole area's score.
type GapLevel string

// Gap levels.
const (
	GapLevelQuestion GapLevel = "question"
	GapLevelArea     GapLevel = "area"
)

// Gap is a critical compliance gap listed in the report.
type Gap struct {
	Area           string   `json:"area" yaml:"area"`
	AreaName       string   `json:"area_name" yaml:"area_name"`
	QuestionID     string   `json:"question_id,omitempty" yaml:"question_id,omitempty"`
	Question       string   `json:"question,omitempty" yaml:"question,omitempty"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Regulation     string   `json:"regulation" yaml:"regulation"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
	Responsible    string   `json:"responsible" yaml:"responsible"`
	Level          GapLevel `json:"level" yaml:"level"`
	Actions        []string `json:"actions" yaml:"actions"`
	Resources      []string `json:"resources" yaml:"resources"`
	// Score is the answer (0-5) for question gaps and the area score (0-100)
	// for area gaps.
	Score int `json:"score" yaml:"score"`
}
