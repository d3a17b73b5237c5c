package remediation

import (
	"sort"
	"time"

	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Effort per gap, by severity.
var gapEffort = map[models.Severity]time.Duration{
	models.SeverityHigh:   5 * 8 * time.Hour,
	models.SeverityMedium: 2 * 8 * time.Hour,
	models.SeverityLow:    8 * time.Hour,
}

// GapGrouper groups gaps into one work package per area.
type GapGrouper struct {
	logger logger.Logger
}

// NewGapGrouper creates a new gap grouper.
func NewGapGrouper(log logger.Logger) *GapGrouper {
	return &GapGrouper{logger: log}
}

// Group returns one group per area in first-seen order of gaps, which is
// expected to already be sorted by severity.
func (g *GapGrouper) Group(gaps []models.Gap) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, gap := range gaps {
		i, ok := index[gap.Area]
		if !ok {
			i = len(groups)
			index[gap.Area] = i
			groups = append(groups, Group{Area: gap.Area, AreaName: gap.AreaName})
		}
		groups[i].Gaps = append(groups[i].Gaps, gap)
		groups[i].EstimatedEffort += gapEffort[gap.Severity]
	}

	for i := range groups {
		groups[i].Priority = calculatePriority(groups[i].Gaps)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Priority < groups[b].Priority
	})

	g.logger.Debug("Grouped gaps", "gaps", len(gaps), "groups", len(groups))
	return groups
}

// calculatePriority is urgent when an area has several high gaps.
func calculatePriority(gaps []models.Gap) int {
	high, medium := 0, 0
	for _, gap := range gaps {
		switch gap.Severity {
		case models.SeverityHigh:
			high++
		case models.SeverityMedium:
			medium++
		}
	}
	switch {
	case high >= 2:
		return PriorityUrgent
	case high == 1:
		return PriorityHigh
	case medium > 0:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
