package list

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/gxpassess/internal/models"
)

func TestFilter(t *testing.T) {
	summaries := []models.AssessmentSummary{
		{ID: "3", CompanyName: "Acme Pharma"},
		{ID: "2", CompanyName: "BioGen"},
		{ID: "1", CompanyName: "acme labs"},
	}

	assert.Len(t, Filter(summaries, "", 0), 3)
	assert.Len(t, Filter(summaries, "", 2), 2)

	acme := Filter(summaries, "ACME", 0)
	if assert.Len(t, acme, 2) {
		assert.Equal(t, "3", acme[0].ID)
		assert.Equal(t, "1", acme[1].ID)
	}
	assert.Empty(t, Filter(summaries, "nobody", 0))
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{4 * 24 * time.Hour, "4d ago"},
		{60 * 24 * time.Hour, "2024-04-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimeAgo(now.Add(-tt.ago), now))
	}
}
