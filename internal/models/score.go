package models

// AreaScore is the derived score of one area.
type AreaScore struct {
	Area   string     `json:"area"`
	Name   string     `json:"name"`
	Status AreaStatus `json:"status"`
	Score  int        `json:"score"`
	Weight int        `json:"weight"`
	Gaps   int        `json:"gaps"`
}
