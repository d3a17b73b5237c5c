package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/gxpassess/internal/catalog"
)

// Guidance is the remediation advice attached to gaps of one area.
type Guidance struct {
	Regulation     string   `yaml:"regulation"`
	Recommendation string   `yaml:"recommendation"`
	Responsible    string   `yaml:"responsible"`
	Actions        []string `yaml:"actions"`
	Resources      []string `yaml:"resources,omitempty"`
}

// DefaultGuidance applies to areas without a dedicated entry.
var DefaultGuidance = Guidance{
	Regulation:     "General GxP Requirements",
	Recommendation: "Define, document and train a controlled process for this area.",
	Responsible:    "Quality Assurance",
	Actions: []string{
		"Perform a gap assessment against applicable GxP guidance",
		"Draft and approve the governing SOP",
		"Train affected staff and verify effectiveness",
	},
	Resources: []string{"Internal QA", "External GxP consultant"},
}

// BuiltinGuidance is the guidance for the built-in catalog areas.
var BuiltinGuidance = map[string]Guidance{
	catalog.AreaQuality: {
		Regulation:     "ICH Q10, 21 CFR 211.22",
		Recommendation: "Strengthen the pharmaceutical quality system and management oversight.",
		Responsible:    "Head of Quality",
		Actions:        []string{"Update the quality manual", "Institute quarterly management reviews", "Define quality KPIs"},
		Resources:      []string{"QA team", "Site leadership"},
	},
	catalog.AreaValidation: {
		Regulation:     "GAMP 5, EU GMP Annex 11",
		Recommendation: "Adopt a risk-based computer system validation lifecycle.",
		Responsible:    "CSV Lead",
		Actions:        []string{"Create a validation master plan", "Maintain a system inventory with GxP classification", "Schedule periodic reviews"},
		Resources:      []string{"CSV specialists", "IT", "System owners"},
	},
	catalog.AreaDataIntegrity: {
		Regulation:     "FDA 21 CFR Part 11, MHRA GxP Data Integrity Guidance",
		Recommendation: "Implement ALCOA+ controls with routine audit trail review.",
		Responsible:    "Data Integrity Officer",
		Actions:        []string{"Assess systems against ALCOA+", "Enable and review audit trails", "Validate electronic signatures"},
		Resources:      []string{"QA", "IT security", "System owners"},
	},
	catalog.AreaDocuments: {
		Regulation:     "EU GMP Chapter 4, 21 CFR 211.180",
		Recommendation: "Move controlled documents into a validated EDMS.",
		Responsible:    "Document Control Manager",
		Actions:        []string{"Define document lifecycle states", "Enforce periodic review dates", "Set retention schedules"},
		Resources:      []string{"Document control", "EDMS vendor"},
	},
	catalog.AreaTraining: {
		Regulation:     "21 CFR 211.25, EU GMP Chapter 2",
		Recommendation: "Introduce role-based curricula with effectiveness checks.",
		Responsible:    "Training Coordinator",
		Actions:        []string{"Map roles to curricula", "Add effectiveness assessments", "Digitize training records"},
		Resources:      []string{"HR", "Line managers", "LMS"},
	},
	catalog.AreaChangeControl: {
		Regulation:     "ICH Q10, EU GMP Annex 15",
		Recommendation: "Formalize impact assessment and approval before implementation.",
		Responsible:    "Change Control Board",
		Actions:        []string{"Standardize the change request form", "Require QA approval before implementation", "Verify effectiveness before closure"},
		Resources:      []string{"QA", "Engineering", "Regulatory Affairs"},
	},
	catalog.AreaCAPA: {
		Regulation:     "21 CFR 820.100, ICH Q10",
		Recommendation: "Improve root cause analysis and CAPA effectiveness verification.",
		Responsible:    "CAPA Owner",
		Actions:        []string{"Train investigators in root cause tools", "Track CAPA due dates", "Perform effectiveness checks"},
		Resources:      []string{"QA", "Operations"},
	},
	catalog.AreaSuppliers: {
		Regulation:     "EU GMP Chapter 7, ICH Q10",
		Recommendation: "Qualify critical suppliers and cover them by quality agreements.",
		Responsible:    "Supplier Quality Manager",
		Actions:        []string{"Risk-rank suppliers", "Complete quality agreements", "Schedule supplier audits"},
		Resources:      []string{"Procurement", "QA"},
	},
	catalog.AreaIT: {
		Regulation:     "EU GMP Annex 11, 21 CFR Part 11",
		Recommendation: "Qualify infrastructure and tighten access and backup controls.",
		Responsible:    "IT Compliance Manager",
		Actions:        []string{"Qualify servers and networks", "Run periodic access reviews", "Test backup restores"},
		Resources:      []string{"IT operations", "Information security"},
	},
	catalog.AreaAudit: {
		Regulation:     "21 CFR 211.180, EU GMP Chapter 9",
		Recommendation: "Run a risk-based internal audit programme and inspection drills.",
		Responsible:    "Audit Manager",
		Actions:        []string{"Publish an annual audit schedule", "Hold mock inspections", "Track findings to closure"},
		Resources:      []string{"QA auditors", "Department heads"},
	},
	catalog.AreaRisk: {
		Regulation:     "ICH Q9",
		Recommendation: "Standardize quality risk management tools and reviews.",
		Responsible:    "Risk Management Lead",
		Actions:        []string{"Adopt FMEA templates", "Maintain a risk register", "Review risks at management review"},
		Resources:      []string{"QA", "Process owners"},
	},
	catalog.AreaOperations: {
		Regulation:     "21 CFR 211 Subparts D-J, EU GMP Chapters 3-6",
		Recommendation: "Digitalize batch and lab records and integrate operational systems.",
		Responsible:    "Operations Director",
		Actions:        []string{"Pilot electronic batch records", "Automate calibration scheduling", "Integrate LIMS with MES and ERP"},
		Resources:      []string{"Operations", "IT", "Automation engineering"},
	},
}

// GuidanceSet resolves guidance per area.
type GuidanceSet struct {
	byArea   map[string]Guidance
	fallback Guidance
}

// NewGuidanceSet validates that table covers every area of c and that the
// fallback entry is complete.
func NewGuidanceSet(c *catalog.Catalog, table map[string]Guidance, fallback Guidance) (*GuidanceSet, error) {
	if err := fallback.validate(); err != nil {
		return nil, fmt.Errorf("default guidance: %w", err)
	}

	var missing []string
	for _, area := range c.Areas {
		g, ok := table[area.ID]
		if !ok {
			missing = append(missing, area.ID)
			continue
		}
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("guidance for %s: %w", area.ID, err)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("no guidance for areas: %s", strings.Join(missing, ", "))
	}

	return &GuidanceSet{byArea: table, fallback: fallback}, nil
}

// For returns the guidance of an area, or the default entry.
func (s *GuidanceSet) For(areaID string) Guidance {
	if g, ok := s.byArea[areaID]; ok {
		return g
	}
	return s.fallback
}

func (g Guidance) validate() error {
	switch {
	case g.Regulation == "":
		return fmt.Errorf("regulation is required")
	case g.Recommendation == "":
		return fmt.Errorf("recommendation is required")
	case g.Responsible == "":
		return fmt.Errorf("responsible role is required")
	case len(g.Actions) == 0:
		return fmt.Errorf("at least one action is required")
	}
	return nil
}
