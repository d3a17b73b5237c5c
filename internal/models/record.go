package models

import "time"

// AssessmentRecord is a finalized assessment. It is created once on
// completion and never mutated; editing produces a new record.
type AssessmentRecord struct {
	AssessmentDate time.Time      `json:"assessment_date"`
	CompletionDate time.Time      `json:"completion_date"`
	Responses      ResponseSet    `json:"responses"`
	ID             string         `json:"id"`
	CompanyName    string         `json:"company_name"`
	CompanySegment string         `json:"company_segment"`
	Status         RecordStatus   `json:"status"`
	EditOf         string         `json:"edit_of,omitempty"`
	AreaScores     []AreaScore    `json:"area_scores"`
	CompanyData    CompanyProfile `json:"company_data"`
	OverallScore   int            `json:"overall_score"`
	AreasCompleted int            `json:"areas_completed"`
	TotalAreas     int            `json:"total_areas"`
}

// Summary returns the list entry for the record.
func (r *AssessmentRecord) Summary() AssessmentSummary {
	return AssessmentSummary{
		ID:             r.ID,
		CompanyName:    r.CompanyName,
		CompanySegment: r.CompanySegment,
		CompletionDate: r.CompletionDate,
		OverallScore:   r.OverallScore,
		AreasCompleted: r.AreasCompleted,
		TotalAreas:     r.TotalAreas,
		Status:         r.Status,
	}
}

// AreaScore returns the stored score for an area.
func (r *AssessmentRecord) AreaScore(areaID string) (AreaScore, bool) {
	for _, s := range r.AreaScores {
		if s.Area == areaID {
			return s, true
		}
	}
	return AreaScore{}, false
}

// AssessmentSummary is an entry of the append-only assessments list.
type AssessmentSummary struct {
	CompletionDate time.Time    `json:"completion_date"`
	ID             string       `json:"id"`
	CompanyName    string       `json:"company_name"`
	CompanySegment string       `json:"company_segment"`
	Status         RecordStatus `json:"status"`
	OverallScore   int          `json:"overall_score"`
	AreasCompleted int          `json:"areas_completed"`
	TotalAreas     int          `json:"total_areas"`
}

// Draft is the autosaved state of an in-progress wizard.
type Draft struct {
	StartedAt    time.Time   `json:"started_at"`
	SavedAt      time.Time   `json:"saved_at"`
	Responses    ResponseSet `json:"responses"`
	AssessmentID string      `json:"assessment_id,omitempty"`
	CurrentArea  int         `json:"current_area"`
}

// IsEmpty reports whether the draft holds no answers.
func (d *Draft) IsEmpty() bool {
	return len(d.Responses) == 0
}
