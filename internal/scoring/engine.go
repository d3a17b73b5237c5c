package scoring

import (
	"math"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
)

// Status thresholds on the 0-5 average.
const (
	excellentThreshold = 4.0
	goodThreshold      = 2.0
)

// Result is the outcome of scoring a full response set.
type Result struct {
	AreaScores []models.AreaScore `json:"area_scores"`
	Overall    int                `json:"overall"`
}

// Average returns the mean of the valid answers to the area's questions, or
// 0 when there are none.
func Average(area models.AssessmentArea, answers map[string]models.ResponseValue) float64 {
	sum, n := 0, 0
	for _, q := range area.Questions {
		v, ok := answers[q.ID]
		if !ok || !v.Valid() {
			continue
		}
		sum += int(v)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// StatusFor buckets an average maturity.
func StatusFor(avg float64) models.AreaStatus {
	switch {
	case avg >= excellentThreshold:
		return models.StatusExcellent
	case avg >= goodThreshold:
		return models.StatusGood
	default:
		return models.StatusModerate
	}
}

// ScoreArea computes the score of one area.
func ScoreArea(area models.AssessmentArea, answers map[string]models.ResponseValue) models.AreaScore {
	avg := Average(area, answers)

	gaps := 0
	for _, q := range area.Questions {
		if v, ok := answers[q.ID]; ok && v.Valid() && v.IsGap() {
			gaps++
		}
	}

	return models.AreaScore{
		Area:   area.ID,
		Name:   area.Name,
		Score:  int(math.Round(avg / float64(models.MaxResponse) * 100)),
		Weight: area.Weight,
		Status: StatusFor(avg),
		Gaps:   gaps,
	}
}

// OverallScore is the weight-averaged area score, normalized by the actual
// summed weight so it stays on 0-100 when weights do not add up to 100.
func OverallScore(scores []models.AreaScore) int {
	weighted, totalWeight := 0, 0
	for _, s := range scores {
		weighted += s.Score * s.Weight
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(float64(weighted) / float64(totalWeight)))
}

// Score computes every area score in catalog order and the overall score.
func Score(c *catalog.Catalog, responses models.ResponseSet) Result {
	scores := make([]models.AreaScore, 0, len(c.Areas))
	for _, area := range c.Areas {
		scores = append(scores, ScoreArea(area, responses.Area(area.ID)))
	}
	return Result{
		AreaScores: scores,
		Overall:    OverallScore(scores),
	}
}

// Consistent reports whether the scores stored on a record are reproduced by
// re-deriving them from its responses.
func Consistent(c *catalog.Catalog, rec *models.AssessmentRecord) bool {
	res := Score(c, rec.Responses)
	if res.Overall != rec.OverallScore || len(res.AreaScores) != len(rec.AreaScores) {
		return false
	}
	for i := range res.AreaScores {
		if res.AreaScores[i] != rec.AreaScores[i] {
			return false
		}
	}
	return true
}
