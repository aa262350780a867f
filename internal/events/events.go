package events

import "time"

const (
	TypeSearch  = "pokemon.search"
	TypeCompare = "pokemon.compare"
	TypeTeam    = "team.build"
)

// Event is what the hub pushes to feed subscribers after an action
// succeeded. Failed actions are never announced.
type Event struct {
	Type   string    `json:"type"`
	Names  []string  `json:"names"`
	IDs    []int     `json:"ids,omitempty"`
	Winner string    `json:"winner,omitempty"`
	Totals []int     `json:"totals,omitempty"`
	Types  []string  `json:"types,omitempty"`
	At     time.Time `json:"at"`
}
