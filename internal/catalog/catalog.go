// Package catalog holds the assessment question catalog: the compliance
// areas, their weights and questions.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/pathutil"
)

// ExpectedWeightTotal is the sum the area weights are designed to add up to.
const ExpectedWeightTotal = 100

// Catalog is an ordered set of assessment areas.
type Catalog struct {
	Version string                  `json:"version" yaml:"version"`
	Areas   []models.AssessmentArea `json:"areas" yaml:"areas"`
}

// Area returns the area with the given id.
func (c *Catalog) Area(id string) (models.AssessmentArea, bool) {
	if i := c.Index(id); i >= 0 {
		return c.Areas[i], true
	}
	return models.AssessmentArea{}, false
}

// Index returns the position of the area with the given id, or -1.
func (c *Catalog) Index(id string) int {
	for i, a := range c.Areas {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// AreaIDs returns the area ids in catalog order.
func (c *Catalog) AreaIDs() []string {
	ids := make([]string, len(c.Areas))
	for i, a := range c.Areas {
		ids[i] = a.ID
	}
	return ids
}

// TotalQuestions counts the questions of every area.
func (c *Catalog) TotalQuestions() int {
	n := 0
	for _, a := range c.Areas {
		n += len(a.Questions)
	}
	return n
}

// TotalWeight sums the area weights.
func (c *Catalog) TotalWeight() int {
	n := 0
	for _, a := range c.Areas {
		n += a.Weight
	}
	return n
}

// Validate checks the catalog structure. Structural problems are returned as
// an error; a weight total other than ExpectedWeightTotal is only reported in
// warnings because scoring normalizes by the actual total.
func (c *Catalog) Validate() (warnings []string, err error) {
	if len(c.Areas) == 0 {
		return nil, fmt.Errorf("catalog has no areas")
	}

	areaIDs := make(map[string]bool, len(c.Areas))
	for _, a := range c.Areas {
		if a.ID == "" {
			return nil, fmt.Errorf("area %q has no id", a.Name)
		}
		if areaIDs[a.ID] {
			return nil, fmt.Errorf("duplicate area id %q", a.ID)
		}
		areaIDs[a.ID] = true

		if a.Weight < 0 || a.Weight > 100 {
			return nil, fmt.Errorf("area %q: weight %d outside 0-100", a.ID, a.Weight)
		}
		if len(a.Questions) == 0 {
			warnings = append(warnings, fmt.Sprintf("area %q has no questions", a.ID))
		}

		questionIDs := make(map[string]bool, len(a.Questions))
		for _, q := range a.Questions {
			if q.ID == "" {
				return nil, fmt.Errorf("area %q: question without id", a.ID)
			}
			if questionIDs[q.ID] {
				return nil, fmt.Errorf("area %q: duplicate question id %q", a.ID, q.ID)
			}
			questionIDs[q.ID] = true
		}
	}

	if total := c.TotalWeight(); total != ExpectedWeightTotal {
		warnings = append(warnings, fmt.Sprintf("area weights sum to %d, expected %d; overall score is normalized by the actual total",
			total, ExpectedWeightTotal))
	}

	return warnings, nil
}

// LoadFile reads a YAML catalog and validates it.
func LoadFile(path string) (*Catalog, []string, error) {
	validPath, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid catalog path: %w", err)
	}

	data, err := os.ReadFile(validPath) //nolint:gosec // path validated above
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, []string, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	warnings, err := c.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &c, warnings, nil
}
