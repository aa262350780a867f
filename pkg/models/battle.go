package models

// WinnerTie is the Comparison.Winner sentinel when both totals are equal.
// Renderers may change its case; consumers should compare case-insensitively.
const WinnerTie = "Tie"

type Comparison struct {
	Left       Pokemon `json:"-"`
	Right      Pokemon `json:"-"`
	LeftName   string  `json:"left"`
	RightName  string  `json:"right"`
	LeftTotal  int     `json:"left_total"`
	RightTotal int     `json:"right_total"`
	Winner     string  `json:"winner"`
}

type TeamMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	SpriteURL   string `json:"sprite_url,omitempty"`
	PrimaryType string `json:"primary_type,omitempty"`
	TotalStat   int    `json:"total_stat"`
}

// TeamSummary holds the six members of a team plus its coverage and power.
// Members are expected to carry distinct ids; that is guaranteed by whoever
// picks them, not re-checked here.
type TeamSummary struct {
	Members          []Pokemon `json:"-"`
	MemberTotals     []int     `json:"-"` // total base stat per member, same order
	DistinctTypes    []string  `json:"distinct_types"`
	AverageTotalStat int       `json:"average_total_stat"`
}
