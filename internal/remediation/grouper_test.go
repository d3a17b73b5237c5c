package remediation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

func gap(area, question string, sev models.Severity) models.Gap {
	return models.Gap{
		Area:        area,
		AreaName:    "Area " + area,
		QuestionID:  question,
		Severity:    sev,
		Regulation:  "21 CFR Part 11",
		Responsible: "QA Manager",
		Actions:     []string{"Write SOP"},
		Level:       models.GapLevelQuestion,
	}
}

func TestGroup(t *testing.T) {
	g := NewGapGrouper(logger.NewMockLogger())
	groups := g.Group([]models.Gap{
		gap("quality", "qms_1", models.SeverityMedium),
		gap("data_integrity", "di_1", models.SeverityHigh),
		gap("data_integrity", "di_2", models.SeverityHigh),
		gap("training", "trn_1", models.SeverityHigh),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "data_integrity", groups[0].Area)
	assert.Equal(t, PriorityUrgent, groups[0].Priority)
	assert.Len(t, groups[0].Gaps, 2)
	assert.Equal(t, 10*8*time.Hour, groups[0].EstimatedEffort)

	assert.Equal(t, "training", groups[1].Area)
	assert.Equal(t, PriorityHigh, groups[1].Priority)
	assert.Equal(t, "quality", groups[2].Area)
	assert.Equal(t, PriorityMedium, groups[2].Priority)
}

func TestBuild(t *testing.T) {
	p := NewPlanner(logger.NewMockLogger())
	when := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	areaGap := gap("capa", "", models.SeverityMedium)
	areaGap.Level = models.GapLevelArea

	plan := p.Build(PlanInfo{AssessmentID: "a1", Company: "Acme", GeneratedAt: when}, []models.Gap{
		gap("quality", "qms_1", models.SeverityHigh),
		gap("quality", "qms_2", models.SeverityHigh),
		areaGap,
	})

	assert.Equal(t, PlanVersion, plan.PlanVersion)
	assert.Equal(t, "a1", plan.AssessmentID)
	require.Len(t, plan.Actions, 2)
	assert.Equal(t, "ACT-001", plan.Actions[0].ID)
	assert.Equal(t, []string{"qms_1", "qms_2"}, plan.Actions[0].GapRefs)
	assert.Equal(t, []string{"capa"}, plan.Actions[1].GapRefs)
	assert.Equal(t, 3, plan.Metadata.TotalGaps)
	assert.Equal(t, 2, plan.Metadata.Actions)
	assert.Equal(t, "1-4 weeks", plan.Metadata.EstimatedTotalEffort)
	assert.Greater(t, plan.Metadata.PriorityScore, 0.0)
}

func TestBuild_NoGaps(t *testing.T) {
	plan := NewPlanner(logger.NewMockLogger()).Build(PlanInfo{AssessmentID: "a1"}, nil)
	assert.Empty(t, plan.Actions)
	assert.NotNil(t, plan.Actions)
	assert.Equal(t, 0.0, plan.Metadata.PriorityScore)
	assert.Equal(t, "under 1 day", plan.Metadata.EstimatedTotalEffort)
}

func TestEstimateEffort(t *testing.T) {
	tests := []struct {
		want string
		d    time.Duration
	}{
		{"under 1 day", 4 * time.Hour},
		{"1-5 days", 8 * time.Hour},
		{"1-4 weeks", 10 * 8 * time.Hour},
		{"6+ weeks", 30 * 8 * time.Hour},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateEffort(tt.d), tt.d.String())
	}
}
