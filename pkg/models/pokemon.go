package models

// Pokemon is a single record as returned by the upstream species endpoint
// (GET /api/v2/pokemon/{nameOrId}). Only the fields the service derives from
// are mapped; everything else in the payload is ignored on decode.
//
// Types, Stats and Moves are nil when the field was absent from the payload
// and non-nil (possibly empty) when it was present. Derivations rely on that
// difference to tell a malformed record from a degenerate one.
type Pokemon struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Height  int         `json:"height"` // decimetres
	Weight  int         `json:"weight"` // hectograms
	Types   []TypeEntry `json:"types"`
	Stats   []StatEntry `json:"stats"`
	Moves   []MoveEntry `json:"moves"`
	Sprites Sprites     `json:"sprites"`
}

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type TypeEntry struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort,omitempty"`
	Stat     NamedResource `json:"stat"`
}

type MoveEntry struct {
	Move NamedResource `json:"move"`
}

type Sprites struct {
	FrontDefault string `json:"front_default,omitempty"`
}

// TypeNames returns the type names in slot order as delivered upstream.
func (p *Pokemon) TypeNames() []string {
	out := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		out = append(out, t.Type.Name)
	}
	return out
}
