package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
)

const overrideYAML = `
default:
  regulation: Company Quality Standard QS-001
  recommendation: Escalate to the site quality council.
  responsible: Site Quality Head
  actions: [Raise a quality council agenda item]
areas:
  quality:
    regulation: ICH Q10 and company QM-100
    recommendation: Align the quality manual with ICH Q10.
    responsible: Head of Quality
    actions: [Rewrite the quality manual]
  cleaning:
    regulation: EU GMP Annex 15
    recommendation: Validate cleaning procedures.
    responsible: Validation Lead
    actions: [Run cleaning validation]
`

func TestParseGuidance(t *testing.T) {
	table, fallback, err := ParseGuidance([]byte(overrideYAML))
	require.NoError(t, err)

	assert.Equal(t, "ICH Q10 and company QM-100", table[catalog.AreaQuality].Regulation)
	assert.Equal(t, BuiltinGuidance[catalog.AreaCAPA], table[catalog.AreaCAPA], "unlisted areas keep built-in guidance")
	assert.Equal(t, "EU GMP Annex 15", table["cleaning"].Regulation)
	assert.Equal(t, "Site Quality Head", fallback.Responsible)

	assert.NotEqual(t, "ICH Q10 and company QM-100", BuiltinGuidance[catalog.AreaQuality].Regulation,
		"built-in table is not modified")
}

func TestParseGuidance_Errors(t *testing.T) {
	_, _, err := ParseGuidance([]byte("areas: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing guidance YAML")

	_, _, err = ParseGuidance([]byte("areas:\n  quality:\n    regulation: X\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guidance for quality: recommendation is required")
}

func TestLoadGuidance_ExtendsCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guidance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrideYAML), 0o600))

	table, fallback, err := LoadGuidance(path)
	require.NoError(t, err)

	c := catalog.Default()
	c.Areas = append(c.Areas, models.AssessmentArea{
		ID: "cleaning", Name: "Cleaning Validation", Weight: 5,
		Questions: []models.Question{{ID: "cln_1", Text: "How validated are cleaning procedures?"}},
	})

	_, err = NewGenerator(c)
	require.Error(t, err, "built-in guidance does not cover the extra area")

	g, err := NewGenerator(c, WithGuidance(table, fallback))
	require.NoError(t, err)
	assert.Equal(t, "EU GMP Annex 15", g.guidance.For("cleaning").Regulation)

	_, _, err = LoadGuidance("guidance.json")
	require.Error(t, err)
}
