package report

import (
	"time"

	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/scoring"
)

// DemoLabel marks every artifact rendered from canned data.
const DemoLabel = "DEMO DATA"

// SourceKind tells whether a report is built from a real assessment.
type SourceKind string

// Source kinds.
const (
	SourceReal SourceKind = "real"
	SourceDemo SourceKind = "demo"
)

// Source is the record a report is built from, tagged with its origin.
type Source struct {
	Record  *models.AssessmentRecord
	Systems []models.SystemEntry
	Kind    SourceKind
}

// IsDemo reports whether the source is canned demo data.
func (s Source) IsDemo() bool { return s.Kind == SourceDemo }

// RealSource wraps a finalized record and its inventory.
func RealSource(rec *models.AssessmentRecord, systems []models.SystemEntry) Source {
	return Source{Kind: SourceReal, Record: rec, Systems: systems}
}

// ResolveSource returns the real record when one was found and the demo
// source otherwise.
func ResolveSource(c *catalog.Catalog, rec *models.AssessmentRecord, systems []models.SystemEntry, found bool) Source {
	if found && rec != nil {
		return RealSource(rec, systems)
	}
	return DemoSource(c)
}

// demoDate is fixed so demo artifacts are reproducible.
var demoDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// DemoSource builds the canned demo assessment for catalog c.
func DemoSource(c *catalog.Catalog) Source {
	responses := models.NewResponseSet()
	for i, area := range c.Areas {
		for j, q := range area.Questions {
			// A spread of mostly defined-to-managed answers with a few gaps.
			v := models.ResponseValue(2 + (i+j)%3)
			if (i*3+j)%7 == 0 {
				v = models.MaturityInitial
			}
			responses.Set(area.ID, q.ID, v)
		}
	}

	company := models.CompanyProfile{
		Name:         "Demo Pharma Ltd",
		Segment:      models.SegmentPharmaceutical,
		Country:      "Germany",
		ContactName:  "Demo User",
		ContactEmail: "demo@example.com",
		Employees:    250,
		RegisteredAt: demoDate,
	}

	result := scoring.Score(c, responses)
	rec := &models.AssessmentRecord{
		ID:             "demo",
		CompanyName:    company.Name,
		CompanySegment: company.Segment,
		AssessmentDate: demoDate,
		CompletionDate: demoDate,
		Status:         models.RecordCompleted,
		OverallScore:   result.Overall,
		AreasCompleted: scoring.AreasCompleted(c, responses),
		TotalAreas:     len(c.Areas),
		Responses:      responses,
		AreaScores:     result.AreaScores,
		CompanyData:    company,
	}

	return Source{Kind: SourceDemo, Record: rec, Systems: demoSystems()}
}

func demoSystems() []models.SystemEntry {
	return []models.SystemEntry{
		{Name: "TrackWise", Type: models.SystemTypeQMS, Vendor: "Sparta Systems", Deployment: models.DeploymentCloud, Users: 120, MonthlyCost: 4500, SupportCost: 8000, InfrastructureCost: 0, GxPCritical: true, Integrations: []string{"SAP S/4HANA"}},
		{Name: "LabWare LIMS", Type: models.SystemTypeLIMS, Vendor: "LabWare", Deployment: models.DeploymentOnPrem, Users: 60, MonthlyCost: 3000, SupportCost: 12000, InfrastructureCost: 9000, GxPCritical: true},
		{Name: "SAP S/4HANA", Type: models.SystemTypeERP, Vendor: "SAP", Deployment: models.DeploymentHybrid, Users: 300, MonthlyCost: 9000, SupportCost: 20000, InfrastructureCost: 15000, GxPCritical: false},
		{Name: "Veeva Vault", Type: models.SystemTypeEDMS, Vendor: "Veeva", Deployment: models.DeploymentCloud, Users: 200, MonthlyCost: 3500, SupportCost: 5000, GxPCritical: true},
	}
}
