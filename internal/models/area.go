// Package models contains the data structures of a GxP compliance
// self-assessment: the question catalog, responses, scores, persisted
// records, company profile and systems inventory.
package models

// Question is a single maturity question. Questions are defined with the
// catalog and are identical across assessment runs.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Category string `json:"category" yaml:"category"`
}

// AssessmentArea is one compliance domain with its importance weight.
type AssessmentArea struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Questions   []Question `json:"questions" yaml:"questions"`
	Weight      int        `json:"weight" yaml:"weight"`
}

// HasQuestion reports whether questionID belongs to the area.
func (a AssessmentArea) HasQuestion(questionID string) bool {
	for _, q := range a.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// QuestionByID returns the question with the given id.
func (a AssessmentArea) QuestionByID(questionID string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}
