package report

import (
	"sort"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
)

// Area score thresholds for the area-level fallback.
const (
	areaGapThreshold     = 70
	areaGapHighThreshold = 50
)

// CriticalGaps lists one gap per answer below the gap threshold. When there
// are none, every area scoring below 70 yields an area-level gap instead.
// Gaps are ordered by severity, then catalog order.
func CriticalGaps(c *catalog.Catalog, rec *models.AssessmentRecord, guidance *GuidanceSet) []models.Gap {
	gaps := questionGaps(c, rec, guidance)
	if len(gaps) == 0 {
		gaps = areaGaps(c, rec, guidance)
	}

	// Gaps are generated in catalog order, so a stable sort keeps it as the
	// tie-breaker.
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Severity.Rank() < gaps[j].Severity.Rank()
	})
	return gaps
}

func questionGaps(c *catalog.Catalog, rec *models.AssessmentRecord, guidance *GuidanceSet) []models.Gap {
	var gaps []models.Gap
	for _, area := range c.Areas {
		answers := rec.Responses.Area(area.ID)
		for _, q := range area.Questions {
			v, ok := answers[q.ID]
			if !ok || !v.Valid() || !v.IsGap() {
				continue
			}
			g := newGap(area, guidance.For(area.ID), models.SeverityForResponse(v), int(v))
			g.QuestionID = q.ID
			g.Question = q.Text
			g.Level = models.GapLevelQuestion
			gaps = append(gaps, g)
		}
	}
	return gaps
}

func areaGaps(c *catalog.Catalog, rec *models.AssessmentRecord, guidance *GuidanceSet) []models.Gap {
	var gaps []models.Gap
	for _, area := range c.Areas {
		score, ok := rec.AreaScore(area.ID)
		if !ok || score.Score >= areaGapThreshold {
			continue
		}
		sev := models.SeverityMedium
		if score.Score < areaGapHighThreshold {
			sev = models.SeverityHigh
		}
		g := newGap(area, guidance.For(area.ID), sev, score.Score)
		g.Level = models.GapLevelArea
		gaps = append(gaps, g)
	}
	return gaps
}

func newGap(area models.AssessmentArea, g Guidance, sev models.Severity, score int) models.Gap {
	return models.Gap{
		Area:           area.ID,
		AreaName:       area.Name,
		Severity:       sev,
		Score:          score,
		Regulation:     g.Regulation,
		Recommendation: g.Recommendation,
		Responsible:    g.Responsible,
		Actions:        append([]string(nil), g.Actions...),
		Resources:      append([]string(nil), g.Resources...),
	}
}
