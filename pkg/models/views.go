package models

type StatItem struct {
	DisplayName string  `json:"name"`
	Value       int     `json:"value"`
	Percent     float64 `json:"percent"` // share of 255, clamped to 1.0
}

type StatSummary struct {
	Name    string     `json:"pokemon"`
	Items   []StatItem `json:"items"`
	Total   int        `json:"total"`
	Average float64    `json:"average"`
	Highest StatItem   `json:"highest"`
	Lowest  StatItem   `json:"lowest"`
}

type MoveSummary struct {
	Name       string   `json:"pokemon"`
	Shown      []string `json:"shown"`
	ShownCount int      `json:"shown_count"`
	TotalCount int      `json:"total_count"`
}

// Remaining is how many moves were cut by the display limit.
func (m MoveSummary) Remaining() int {
	return m.TotalCount - m.ShownCount
}

type TypeSlot struct {
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary"`
}

type TypeSummary struct {
	Name        string     `json:"pokemon"`
	Types       []TypeSlot `json:"types"`
	Composition string     `json:"composition"` // e.g. "grass/poison"
}

// Card is the basic profile shown after a search.
type Card struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	SpriteURL       string     `json:"sprite_url,omitempty"`
	HeightMetres    float64    `json:"height_m"`
	WeightKilograms float64    `json:"weight_kg"`
	Types           []string   `json:"types"`
	Stats           []StatItem `json:"stats"`
}

type RawView struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	PropertyCount int     `json:"property_count"`
	SizeKB        float64 `json:"size_kb"`
	JSON          string  `json:"json"`
}
