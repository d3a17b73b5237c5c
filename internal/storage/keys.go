package storage

// Fixed keys of the flat storage namespace.
const (
	KeyCompany       = "companyData"
	KeyDraft         = "assessmentDraft"
	KeyLatestResults = "assessmentResults"
	KeyAssessments   = "assessments"
	KeyCustomSystems = "customSystems"
	resultsPrefix    = KeyLatestResults + ":"
	systemsKeyPrefix = "systemsInventory:"
)

// ResultsKey is the key of one finalized assessment record.
func ResultsKey(assessmentID string) string {
	return resultsPrefix + assessmentID
}

// SystemsKey is the key of an assessment's systems inventory.
func SystemsKey(assessmentID string) string {
	return systemsKeyPrefix + assessmentID
}

// ResultsPrefix is the prefix shared by all id-scoped result keys.
func ResultsPrefix() string { return resultsPrefix }
