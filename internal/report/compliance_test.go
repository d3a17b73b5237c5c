package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateCompliance(t *testing.T) {
	tests := []struct {
		name    string
		want    []ComplianceEstimate
		overall int
	}{
		{
			name:    "mid score",
			overall: 62,
			want: []ComplianceEstimate{
				{Framework: "FDA 21 CFR Part 11", Score: 67, Gaps: 6},
				{Framework: "EU GMP Annex 11", Score: 62, Gaps: 7},
				{Framework: "GAMP 5", Score: 57, Gaps: 7},
				{Framework: "ICH Q9/Q10", Score: 65, Gaps: 5},
				{Framework: "ISO 13485", Score: 59, Gaps: 8},
				{Framework: "MHRA GxP Data Integrity", Score: 54, Gaps: 9},
			},
		},
		{
			name:    "clamped high",
			overall: 98,
			want: []ComplianceEstimate{
				{Framework: "FDA 21 CFR Part 11", Score: 100, Gaps: 1},
				{Framework: "EU GMP Annex 11", Score: 98, Gaps: 1},
				{Framework: "GAMP 5", Score: 93, Gaps: 2},
				{Framework: "ICH Q9/Q10", Score: 100, Gaps: 1},
				{Framework: "ISO 13485", Score: 95, Gaps: 2},
				{Framework: "MHRA GxP Data Integrity", Score: 90, Gaps: 2},
			},
		},
		{
			name:    "clamped low",
			overall: 3,
			want: []ComplianceEstimate{
				{Framework: "FDA 21 CFR Part 11", Score: 8, Gaps: 9},
				{Framework: "EU GMP Annex 11", Score: 3, Gaps: 10},
				{Framework: "GAMP 5", Score: 0, Gaps: 11},
				{Framework: "ICH Q9/Q10", Score: 6, Gaps: 8},
				{Framework: "ISO 13485", Score: 0, Gaps: 12},
				{Framework: "MHRA GxP Data Integrity", Score: 0, Gaps: 13},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateCompliance(tt.overall))
		})
	}
}

func TestFramework_BreakpointBoundaries(t *testing.T) {
	fw := Frameworks()
	require.Len(t, fw, 6)
	eu := fw[1]
	require.Equal(t, "EU GMP Annex 11", eu.Name)

	assert.Equal(t, 1, eu.Estimate(85).Gaps)
	assert.Equal(t, 4, eu.Estimate(84).Gaps)
	assert.Equal(t, 4, eu.Estimate(70).Gaps)
	assert.Equal(t, 7, eu.Estimate(69).Gaps)
	assert.Equal(t, 10, eu.Estimate(0).Gaps)

	for _, f := range fw {
		for s := 0; s <= 100; s++ {
			e := f.Estimate(s)
			assert.GreaterOrEqual(t, e.Score, 0)
			assert.LessOrEqual(t, e.Score, 100)
			assert.Positive(t, e.Gaps)
		}
	}
}
