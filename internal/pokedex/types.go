package pokedex

import (
	"strings"

	"pokehub/pkg/models"
)

// PrimarySlot is the slot number of a pokemon's primary type. Every other
// slot value counts as secondary.
const PrimarySlot = 1

// SummarizeTypes lists the types in slot order, flagging the primary one.
func SummarizeTypes(p *Pokemon) ([]models.TypeSlot, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	out := make([]models.TypeSlot, 0, len(p.Types))
	for _, t := range p.Types {
		out = append(out, models.TypeSlot{
			Name:      t.Type.Name,
			IsPrimary: t.Slot == PrimarySlot,
		})
	}
	return out, nil
}

// TypeComposition joins the type names with "/", e.g. "grass/poison".
func TypeComposition(types []models.TypeSlot) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Name)
	}
	return strings.Join(names, "/")
}

// TypeSummary bundles SummarizeTypes with the composition string.
func TypeSummary(p *Pokemon) (models.TypeSummary, error) {
	types, err := SummarizeTypes(p)
	if err != nil {
		return models.TypeSummary{}, err
	}
	return models.TypeSummary{
		Name:        p.Name,
		Types:       types,
		Composition: TypeComposition(types),
	}, nil
}
