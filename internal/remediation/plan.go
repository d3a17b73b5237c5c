package remediation

import (
	"fmt"
	"time"

	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// PlanInfo identifies the assessment a plan is built for.
type PlanInfo struct {
	GeneratedAt  time.Time
	AssessmentID string
	Company      string
	Label        string
}

// Planner builds remediation plans.
type Planner struct {
	logger  logger.Logger
	grouper *GapGrouper
}

// NewPlanner creates a planner.
func NewPlanner(log logger.Logger) *Planner {
	return &Planner{logger: log, grouper: NewGapGrouper(log)}
}

// Build creates a plan with one action per affected area.
func (p *Planner) Build(info PlanInfo, gaps []models.Gap) *Plan {
	plan := &Plan{
		GeneratedAt:  info.GeneratedAt,
		PlanVersion:  PlanVersion,
		AssessmentID: info.AssessmentID,
		Company:      info.Company,
		Label:        info.Label,
		Actions:      []Action{},
	}

	var effort time.Duration
	for i, group := range p.grouper.Group(gaps) {
		plan.Actions = append(plan.Actions, newAction(group, i+1))
		effort += group.EstimatedEffort
	}

	plan.Metadata = PlanMetadata{
		TotalGaps:            len(gaps),
		Actions:              len(plan.Actions),
		EstimatedTotalEffort: EstimateEffort(effort),
		PriorityScore:        CalculatePriorityScore(plan.Actions),
	}
	return plan
}

func newAction(group Group, n int) Action {
	lead := group.Gaps[0]
	action := Action{
		ID:              fmt.Sprintf("ACT-%03d", n),
		Title:           fmt.Sprintf("Close %d gap(s) in %s", len(group.Gaps), group.AreaName),
		Area:            group.Area,
		Severity:        lead.Severity,
		Regulation:      lead.Regulation,
		Responsible:     lead.Responsible,
		Recommendation:  lead.Recommendation,
		Steps:           append([]string(nil), lead.Actions...),
		Resources:       append([]string(nil), lead.Resources...),
		Priority:        group.Priority,
		EstimatedEffort: EstimateEffort(group.EstimatedEffort),
	}
	for _, gap := range group.Gaps {
		ref := gap.QuestionID
		if gap.Level == models.GapLevelArea {
			ref = gap.Area
		}
		action.GapRefs = append(action.GapRefs, ref)
	}
	return action
}
