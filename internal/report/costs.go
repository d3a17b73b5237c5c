package report

import (
	"sort"

	"github.com/Veraticus/gxpassess/internal/models"
)

// CostSummary aggregates the systems inventory.
type CostSummary struct {
	ByType           []TypeCost   `json:"by_type" yaml:"by_type"`
	Systems          []SystemCost `json:"systems" yaml:"systems"`
	TotalAnnual      float64      `json:"total_annual" yaml:"total_annual"`
	TotalMonthly     float64      `json:"total_monthly" yaml:"total_monthly"`
	GxPCriticalCount int          `json:"gxp_critical_count" yaml:"gxp_critical_count"`
}

// TypeCost is the annual cost of all systems of one type.
type TypeCost struct {
	Type       string  `json:"type" yaml:"type"`
	AnnualCost float64 `json:"annual_cost" yaml:"annual_cost"`
	Count      int     `json:"count" yaml:"count"`
}

// SystemCost is one inventory row with its annual cost.
type SystemCost struct {
	models.SystemEntry `yaml:",inline"`
	AnnualCost         float64 `json:"annual_cost" yaml:"annual_cost"`
}

// AggregateCosts totals the inventory. The breakdown is ordered by annual
// cost, highest first, then by type name.
func AggregateCosts(systems []models.SystemEntry) CostSummary {
	summary := CostSummary{ByType: []TypeCost{}, Systems: []SystemCost{}}
	byType := make(map[string]*TypeCost)

	for _, s := range systems {
		annual := s.AnnualCost()
		summary.Systems = append(summary.Systems, SystemCost{SystemEntry: s, AnnualCost: annual})
		summary.TotalAnnual += annual
		summary.TotalMonthly += s.MonthlyCost
		if s.GxPCritical {
			summary.GxPCriticalCount++
		}

		tc, ok := byType[s.Type]
		if !ok {
			tc = &TypeCost{Type: s.Type}
			byType[s.Type] = tc
		}
		tc.AnnualCost += annual
		tc.Count++
	}

	for _, tc := range byType {
		summary.ByType = append(summary.ByType, *tc)
	}
	sort.Slice(summary.ByType, func(i, j int) bool {
		a, b := summary.ByType[i], summary.ByType[j]
		if a.AnnualCost != b.AnnualCost {
			return a.AnnualCost > b.AnnualCost
		}
		return a.Type < b.Type
	})

	return summary
}
