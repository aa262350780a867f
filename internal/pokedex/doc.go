// Package pokedex derives display views from a single upstream record:
// the stat breakdown, the move list, the type composition, the profile card
// and the raw JSON view.
//
// Every function takes the record it works on as an argument and returns a
// freshly built value from pkg/models. Nothing here performs I/O or keeps
// state between calls.
package pokedex

import "pokehub/pkg/models"

// Pokemon is re-exported so callers of the derivations don't need to import
// pkg/models for the common case.
type Pokemon = models.Pokemon
