package models

import "fmt"

// ResponseValue is a maturity level selected for one question.
type ResponseValue int

// Maturity levels on the six point scale.
const (
	MaturityNotImplemented ResponseValue = iota
	MaturityInitial
	MaturityDeveloping
	MaturityDefined
	MaturityManaged
	MaturityOptimized
)

// MinResponse and MaxResponse bound the maturity scale.
const (
	MinResponse = MaturityNotImplemented
	MaxResponse = MaturityOptimized
)

// GapThreshold is the level below which an answer counts as a gap.
const GapThreshold = MaturityDefined

var maturityLabels = [...]string{
	"Not Implemented",
	"Initial / Ad hoc",
	"Developing",
	"Defined",
	"Managed",
	"Optimized / Digital",
}

// Valid reports whether v is on the maturity scale.
func (v ResponseValue) Valid() bool {
	return v >= MinResponse && v <= MaxResponse
}

// IsGap reports whether v is below GapThreshold.
func (v ResponseValue) IsGap() bool {
	return v < GapThreshold
}

// Label returns the display name of the maturity level.
func (v ResponseValue) Label() string {
	if !v.Valid() {
		return fmt.Sprintf("Invalid (%d)", int(v))
	}
	return maturityLabels[v]
}

// MaturityLevels returns every level of the scale in ascending order.
func MaturityLevels() []ResponseValue {
	levels := make([]ResponseValue, 0, len(maturityLabels))
	for v := MinResponse; v <= MaxResponse; v++ {
		levels = append(levels, v)
	}
	return levels
}

// ResponseSet maps area id to question id to the selected maturity level.
type ResponseSet map[string]map[string]ResponseValue

// NewResponseSet returns an empty response set.
func NewResponseSet() ResponseSet {
	return make(ResponseSet)
}

// Set records an answer.
func (r ResponseSet) Set(areaID, questionID string, v ResponseValue) {
	answers, ok := r[areaID]
	if !ok {
		answers = make(map[string]ResponseValue)
		r[areaID] = answers
	}
	answers[questionID] = v
}

// Get returns the answer to a question, if any.
func (r ResponseSet) Get(areaID, questionID string) (ResponseValue, bool) {
	v, ok := r[areaID][questionID]
	return v, ok
}

// Area returns the answers recorded for an area. The map must not be modified.
func (r ResponseSet) Area(areaID string) map[string]ResponseValue {
	return r[areaID]
}

// Count returns how many answers are recorded for an area.
func (r ResponseSet) Count(areaID string) int {
	return len(r[areaID])
}

// Clone returns a deep copy.
func (r ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(r))
	for area, answers := range r {
		copied := make(map[string]ResponseValue, len(answers))
		for q, v := range answers {
			copied[q] = v
		}
		out[area] = copied
	}
	return out
}
