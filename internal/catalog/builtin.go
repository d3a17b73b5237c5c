package catalog

import "github.com/Veraticus/gxpassess/internal/models"

// Area ids of the built-in catalog.
const (
	AreaQuality       = "quality"
	AreaValidation    = "validation"
	AreaDataIntegrity = "data_integrity"
	AreaDocuments     = "documents"
	AreaTraining      = "training"
	AreaChangeControl = "change_control"
	AreaCAPA          = "capa"
	AreaSuppliers     = "suppliers"
	AreaIT            = "it_infrastructure"
	AreaAudit         = "audit_readiness"
	AreaRisk          = "risk_management"
	AreaOperations    = "operations"
)

const builtinCatalogVersion = "2024.1"

func q(id, category, text string) models.Question {
	return models.Question{ID: id, Text: text, Category: category}
}

// Default returns the built-in Life Sciences catalog. Each call returns a
// fresh copy.
func Default() *Catalog {
	return &Catalog{
		Version: builtinCatalogVersion,
		Areas: []models.AssessmentArea{
			{
				ID:          AreaQuality,
				Name:        "Quality Management System",
				Description: "Structure, ownership and oversight of the quality system.",
				Weight:      12,
				Questions: []models.Question{
					q("qms_1", "Governance", "How formalized is your quality manual and quality policy?"),
					q("qms_2", "Management Review", "How effective are periodic management reviews of quality performance?"),
					q("qms_3", "Metrics", "How mature is the tracking of quality KPIs across sites?"),
				},
			},
			{
				ID:          AreaValidation,
				Name:        "Computer System Validation",
				Description: "Risk-based validation of GxP computerized systems.",
				Weight:      12,
				Questions: []models.Question{
					q("csv_1", "Planning", "How consistently are validation plans and requirements produced for GxP systems?"),
					q("csv_2", "Testing", "How mature are your IQ/OQ/PQ execution and traceability practices?"),
					q("csv_3", "Periodic Review", "How regularly are validated systems reviewed for continued fitness?"),
				},
			},
			{
				ID:          AreaDataIntegrity,
				Name:        "Data Integrity",
				Description: "ALCOA+ controls over GxP records and audit trails.",
				Weight:      12,
				Questions: []models.Question{
					q("di_1", "ALCOA+", "How well are ALCOA+ principles embedded in record keeping?"),
					q("di_2", "Audit Trail", "How systematically are audit trails reviewed?"),
					q("di_3", "Electronic Signatures", "How compliant are electronic signatures with Part 11 requirements?"),
				},
			},
			{
				ID:          AreaDocuments,
				Name:        "Document Management",
				Description: "Control of SOPs, specifications and records.",
				Weight:      8,
				Questions: []models.Question{
					q("doc_1", "Lifecycle", "How controlled is the document lifecycle from draft to retirement?"),
					q("doc_2", "Access", "How well is access to current effective versions ensured?"),
					q("doc_3", "Retention", "How reliably are record retention periods enforced?"),
				},
			},
			{
				ID:          AreaTraining,
				Name:        "Training Management",
				Description: "Qualification of personnel for their GxP tasks.",
				Weight:      6,
				Questions: []models.Question{
					q("trn_1", "Curricula", "How well are role-based training curricula defined and maintained?"),
					q("trn_2", "Effectiveness", "How is training effectiveness verified?"),
					q("trn_3", "Records", "How complete and retrievable are training records?"),
				},
			},
			{
				ID:          AreaChangeControl,
				Name:        "Change Control",
				Description: "Evaluation and approval of changes to GxP processes and systems.",
				Weight:      8,
				Questions: []models.Question{
					q("chg_1", "Impact Assessment", "How thorough are impact assessments for proposed changes?"),
					q("chg_2", "Approval", "How consistently are changes approved before implementation?"),
					q("chg_3", "Closure", "How well is implementation verified before change closure?"),
				},
			},
			{
				ID:          AreaCAPA,
				Name:        "Deviations & CAPA",
				Description: "Handling of deviations, investigations and corrective actions.",
				Weight:      8,
				Questions: []models.Question{
					q("capa_1", "Investigation", "How rigorous are root cause investigations?"),
					q("capa_2", "Timeliness", "How reliably are CAPAs completed within target dates?"),
					q("capa_3", "Effectiveness", "How systematically is CAPA effectiveness checked?"),
				},
			},
			{
				ID:          AreaSuppliers,
				Name:        "Supplier Management",
				Description: "Qualification and oversight of suppliers and service providers.",
				Weight:      6,
				Questions: []models.Question{
					q("sup_1", "Qualification", "How formal is the supplier qualification process?"),
					q("sup_2", "Quality Agreements", "How complete is coverage by quality agreements?"),
					q("sup_3", "Monitoring", "How actively is supplier performance monitored?"),
				},
			},
			{
				ID:          AreaIT,
				Name:        "IT Infrastructure & Security",
				Description: "Qualified infrastructure, access control and cybersecurity.",
				Weight:      8,
				Questions: []models.Question{
					q("it_1", "Qualification", "How is GxP infrastructure qualified and kept under control?"),
					q("it_2", "Access Control", "How strictly are user access rights managed and reviewed?"),
					q("it_3", "Backup & Recovery", "How regularly are backup and disaster recovery tested?"),
				},
			},
			{
				ID:          AreaAudit,
				Name:        "Audit & Inspection Readiness",
				Description: "Internal audits and preparedness for regulatory inspections.",
				Weight:      8,
				Questions: []models.Question{
					q("aud_1", "Internal Audits", "How comprehensive is the internal audit programme?"),
					q("aud_2", "Inspection Readiness", "How prepared is the organization for an unannounced inspection?"),
					q("aud_3", "Findings", "How effectively are audit findings tracked to closure?"),
				},
			},
			{
				ID:          AreaRisk,
				Name:        "Quality Risk Management",
				Description: "ICH Q9 aligned identification and control of quality risks.",
				Weight:      6,
				Questions: []models.Question{
					q("risk_1", "Methodology", "How standardized are risk assessment methods (FMEA, HACCP)?"),
					q("risk_2", "Integration", "How well is risk management integrated into decisions?"),
					q("risk_3", "Review", "How regularly are risk registers reviewed and updated?"),
				},
			},
			{
				ID:          AreaOperations,
				Name:        "Laboratory & Manufacturing Operations",
				Description: "Digitalization and control of lab and shop floor processes.",
				Weight:      6,
				Questions: []models.Question{
					q("ops_1", "Digitalization", "How digitalized are batch records and lab notebooks?"),
					q("ops_2", "Equipment", "How well are equipment calibration and maintenance controlled?"),
					q("ops_3", "Integration", "How integrated are LIMS, MES and ERP data flows?"),
				},
			},
		},
	}
}
