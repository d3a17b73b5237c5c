package models

// AreaStatus buckets an area's average maturity.
type AreaStatus string

// Area status values.
const (
	StatusExcellent AreaStatus = "excellent"
	StatusGood      AreaStatus = "good"
	StatusModerate  AreaStatus = "moderate"
)

// Label returns the display label.
func (s AreaStatus) Label() string {
	switch s {
	case StatusExcellent:
		return "Excellent"
	case StatusGood:
		return "Good"
	case StatusModerate:
		return "Needs Improvement"
	default:
		return string(s)
	}
}

// RecordStatus is the lifecycle state stored on an assessment record.
type RecordStatus string

// Record status values. Records are only persisted once completed.
const (
	RecordCompleted RecordStatus = "completed"
)
