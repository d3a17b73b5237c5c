// Package scoring derives completion, area scores and the weighted overall
// score from a response set. Every function is pure.
package scoring

import (
	"math"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
)

// FullyComplete is the completion percentage required to leave an area.
const FullyComplete = 100

// answered counts the area's questions that have a valid answer.
func answered(area models.AssessmentArea, answers map[string]models.ResponseValue) int {
	n := 0
	for _, q := range area.Questions {
		if v, ok := answers[q.ID]; ok && v.Valid() {
			n++
		}
	}
	return n
}

// AreaCompletion returns the percentage of the area's questions answered.
// An area without questions is complete.
func AreaCompletion(area models.AssessmentArea, answers map[string]models.ResponseValue) int {
	if len(area.Questions) == 0 {
		return FullyComplete
	}
	done := answered(area, answers)
	if done == len(area.Questions) {
		return FullyComplete
	}
	// Never round a partially answered area up to 100.
	pct := int(math.Round(float64(done) / float64(len(area.Questions)) * 100))
	if pct >= FullyComplete {
		pct = FullyComplete - 1
	}
	return pct
}

// IsAreaComplete reports whether every question of the area is answered.
func IsAreaComplete(area models.AssessmentArea, answers map[string]models.ResponseValue) bool {
	return AreaCompletion(area, answers) == FullyComplete
}

// UnansweredQuestions lists the area's questions still missing an answer.
func UnansweredQuestions(area models.AssessmentArea, answers map[string]models.ResponseValue) []models.Question {
	var missing []models.Question
	for _, q := range area.Questions {
		if v, ok := answers[q.ID]; !ok || !v.Valid() {
			missing = append(missing, q)
		}
	}
	return missing
}

// OverallCompletion returns the percentage of all catalog questions answered.
func OverallCompletion(c *catalog.Catalog, responses models.ResponseSet) int {
	total := c.TotalQuestions()
	if total == 0 {
		return FullyComplete
	}
	done := 0
	for _, area := range c.Areas {
		done += answered(area, responses.Area(area.ID))
	}
	if done == total {
		return FullyComplete
	}
	pct := int(math.Round(float64(done) / float64(total) * 100))
	if pct >= FullyComplete {
		pct = FullyComplete - 1
	}
	return pct
}

// AreasCompleted counts the fully answered areas.
func AreasCompleted(c *catalog.Catalog, responses models.ResponseSet) int {
	n := 0
	for _, area := range c.Areas {
		if IsAreaComplete(area, responses.Area(area.ID)) {
			n++
		}
	}
	return n
}
