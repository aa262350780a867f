package pokedex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"pokehub/pkg/models"
)

// Card builds the search result profile. Height and weight are converted
// from decimetres/hectograms to metres/kilograms.
func Card(p *Pokemon) (models.Card, error) {
	if err := Validate(p); err != nil {
		return models.Card{}, err
	}

	stats := make([]models.StatItem, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, models.StatItem{
			DisplayName: StatDisplayName(s.Stat.Name),
			Value:       s.BaseStat,
			Percent:     StatPercent(s.BaseStat),
		})
	}

	return models.Card{
		ID:              p.ID,
		Name:            p.Name,
		SpriteURL:       p.Sprites.FrontDefault,
		HeightMetres:    float64(p.Height) / 10,
		WeightKilograms: float64(p.Weight) / 10,
		Types:           p.TypeNames(),
		Stats:           stats,
	}, nil
}

// TeamMember is the compact entry used in team listings.
func TeamMember(p *Pokemon, total int) models.TeamMember {
	m := models.TeamMember{
		ID:        p.ID,
		Name:      p.Name,
		SpriteURL: p.Sprites.FrontDefault,
		TotalStat: total,
	}
	for _, t := range p.Types {
		if t.Slot == PrimarySlot {
			m.PrimaryType = t.Type.Name
			break
		}
	}
	if m.PrimaryType == "" && len(p.Types) > 0 {
		m.PrimaryType = p.Types[0].Type.Name
	}
	return m
}

// RawView pretty prints the payload exactly as it came from upstream and
// reports how many top-level properties it has and its size in KB.
func RawView(p *Pokemon, raw []byte) (models.RawView, error) {
	if p == nil {
		return models.RawView{}, &MalformedRecordError{Field: "record"}
	}

	var props map[string]json.RawMessage
	if err := json.Unmarshal(raw, &props); err != nil {
		return models.RawView{}, &MalformedRecordError{Field: "body", Err: err}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return models.RawView{}, fmt.Errorf("indent raw json: %w", err)
	}

	return models.RawView{
		ID:            p.ID,
		Name:          p.Name,
		PropertyCount: len(props),
		SizeKB:        math.Round(float64(buf.Len())/1024*100) / 100,
		JSON:          buf.String(),
	}, nil
}
