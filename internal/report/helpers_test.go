package report

import (
	"time"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/scoring"
)

var completedAt = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

// recordFor answers every question with fill, except the question ids in
// overrides.
func recordFor(c *catalog.Catalog, fill models.ResponseValue, overrides map[string]models.ResponseValue) *models.AssessmentRecord {
	r := models.NewResponseSet()
	for _, a := range c.Areas {
		for _, q := range a.Questions {
			v := fill
			if o, ok := overrides[q.ID]; ok {
				v = o
			}
			r.Set(a.ID, q.ID, v)
		}
	}

	res := scoring.Score(c, r)
	company := models.CompanyProfile{
		Name:         "Acme Pharma, Inc.",
		Segment:      models.SegmentPharmaceutical,
		ContactEmail: "qa@acme.example",
	}
	return &models.AssessmentRecord{
		ID:             "rec-1",
		CompanyName:    company.Name,
		CompanySegment: company.Segment,
		CompanyData:    company,
		AssessmentDate: completedAt.Add(-time.Hour),
		CompletionDate: completedAt,
		Status:         models.RecordCompleted,
		Responses:      r,
		AreaScores:     res.AreaScores,
		OverallScore:   res.Overall,
		AreasCompleted: scoring.AreasCompleted(c, r),
		TotalAreas:     len(c.Areas),
	}
}

func setAreaScore(rec *models.AssessmentRecord, areaID string, score int) {
	for i := range rec.AreaScores {
		if rec.AreaScores[i].Area == areaID {
			rec.AreaScores[i].Score = score
		}
	}
}

func builtinGuidance(c *catalog.Catalog) *GuidanceSet {
	g, err := NewGuidanceSet(c, BuiltinGuidance, DefaultGuidance)
	if err != nil {
		panic(err)
	}
	return g
}
