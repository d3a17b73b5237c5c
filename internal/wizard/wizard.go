// Package wizard implements the step-by-step questionnaire as a finite
// state machine over catalog areas.
//
// The machine is in one of len(areas) area states or the Complete state.
// Leaving an area forward requires it to be fully answered; all areas before
// the current one are therefore always complete.
package wizard

import (
	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/scoring"
)

// Wizard walks a catalog area by area.
type Wizard struct {
	catalog   *catalog.Catalog
	responses models.ResponseSet
	editOf    string
	index     int
	complete  bool
}

// New returns a wizard positioned on the first area with no answers.
func New(c *catalog.Catalog) *Wizard {
	return &Wizard{
		catalog:   c,
		responses: models.NewResponseSet(),
	}
}

// Resume restores a wizard from an autosaved draft. The position is clamped
// to the first incomplete area at or before the saved one.
func Resume(c *catalog.Catalog, d *models.Draft) *Wizard {
	w := New(c)
	if d == nil {
		return w
	}
	w.Load(d.Responses)
	w.editOf = d.AssessmentID
	for w.index < d.CurrentArea && w.index < len(c.Areas)-1 {
		if !w.currentComplete() {
			break
		}
		w.index++
	}
	return w
}

// ForEdit returns a wizard preloaded with an existing record's answers.
// Completing it produces a new record referencing the original.
func ForEdit(c *catalog.Catalog, rec *models.AssessmentRecord) *Wizard {
	w := New(c)
	w.Load(rec.Responses)
	w.editOf = rec.ID
	return w
}

// Load replaces the whole response set and rewinds to the first area.
func (w *Wizard) Load(responses models.ResponseSet) {
	if responses == nil {
		responses = models.NewResponseSet()
	}
	w.responses = responses.Clone()
	w.index = 0
	w.complete = false
}

// Next advances to the following area, or to Complete from the last one.
func (w *Wizard) Next() error {
	if w.complete {
		return apperr.Validation("next area", "assessment is already complete")
	}
	area, ok := w.Current()
	if !ok {
		w.complete = true
		return nil
	}
	if !w.currentComplete() {
		return apperr.Validation("next area", "%d of %d questions in %q are unanswered",
			len(scoring.UnansweredQuestions(area, w.responses.Area(area.ID))), len(area.Questions), area.Name)
	}
	if w.index == len(w.catalog.Areas)-1 {
		w.complete = true
		return nil
	}
	w.index++
	return nil
}

// Previous steps back one area. From Complete it returns to the last area.
func (w *Wizard) Previous() error {
	if w.complete {
		w.complete = false
		return nil
	}
	if w.index == 0 {
		return apperr.Validation("previous area", "already on the first area")
	}
	w.index--
	return nil
}

// Answer records a maturity level for a question of the current area.
func (w *Wizard) Answer(questionID string, v models.ResponseValue) error {
	if w.complete {
		return apperr.Validation("answer question", "assessment is already complete")
	}
	area, ok := w.Current()
	if !ok {
		return apperr.Validation("answer question", "catalog has no areas")
	}
	if !v.Valid() {
		return apperr.Validation("answer question", "response %d is outside %d-%d", int(v), int(models.MinResponse), int(models.MaxResponse))
	}
	if !area.HasQuestion(questionID) {
		return apperr.Validation("answer question", "question %q is not part of area %q", questionID, area.ID)
	}
	w.responses.Set(area.ID, questionID, v)
	return nil
}

// Current returns the area being answered. ok is false in the Complete state
// or when the catalog is empty.
func (w *Wizard) Current() (models.AssessmentArea, bool) {
	if w.complete || w.index >= len(w.catalog.Areas) {
		return models.AssessmentArea{}, false
	}
	return w.catalog.Areas[w.index], true
}

// Index is the position of the current area.
func (w *Wizard) Index() int { return w.index }

// IsComplete reports whether the wizard reached the Complete state.
func (w *Wizard) IsComplete() bool { return w.complete }

// EditOf is the id of the record being edited, if any.
func (w *Wizard) EditOf() string { return w.editOf }

// Catalog returns the catalog being walked.
func (w *Wizard) Catalog() *catalog.Catalog { return w.catalog }

// Responses returns a copy of the answers given so far.
func (w *Wizard) Responses() models.ResponseSet { return w.responses.Clone() }

// AreaCompletion is the completion of the current area.
func (w *Wizard) AreaCompletion() int {
	area, ok := w.Current()
	if !ok {
		return scoring.FullyComplete
	}
	return scoring.AreaCompletion(area, w.responses.Area(area.ID))
}

// OverallCompletion is the completion of the whole catalog.
func (w *Wizard) OverallCompletion() int {
	return scoring.OverallCompletion(w.catalog, w.responses)
}

// Draft captures the wizard state for autosave.
func (w *Wizard) Draft() models.Draft {
	return models.Draft{
		AssessmentID: w.editOf,
		Responses:    w.Responses(),
		CurrentArea:  w.index,
	}
}

func (w *Wizard) currentComplete() bool {
	area, ok := w.Current()
	if !ok {
		return true
	}
	return scoring.IsAreaComplete(area, w.responses.Area(area.ID))
}
