package pokedex

import (
	"math"
	"strings"

	"pokehub/pkg/models"
)

// MaxBaseStat is the ceiling used to scale stat bars.
const MaxBaseStat = 255

// StatDisplayName turns an upstream stat name into its label. Only the first
// hyphen becomes a space: "special-attack" -> "SPECIAL ATTACK".
func StatDisplayName(raw string) string {
	return strings.ToUpper(strings.Replace(raw, "-", " ", 1))
}

// StatPercent is value/255 clamped to [0, 1].
func StatPercent(value int) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(float64(value)/MaxBaseStat, 1.0)
}

// SummarizeStats labels every stat and reports total, average and extremes.
func SummarizeStats(p *Pokemon) (models.StatSummary, error) {
	if err := Validate(p); err != nil {
		return models.StatSummary{}, err
	}
	if len(p.Stats) == 0 {
		return models.StatSummary{}, ErrEmptyStats
	}

	items := make([]models.StatItem, 0, len(p.Stats))
	total := 0
	for _, s := range p.Stats {
		items = append(items, models.StatItem{
			DisplayName: StatDisplayName(s.Stat.Name),
			Value:       s.BaseStat,
			Percent:     StatPercent(s.BaseStat),
		})
		total += s.BaseStat
	}

	// strict comparisons: the first of several equal extremes is kept
	highest, lowest := items[0], items[0]
	for _, it := range items[1:] {
		if it.Value > highest.Value {
			highest = it
		}
		if it.Value < lowest.Value {
			lowest = it
		}
	}

	return models.StatSummary{
		Name:    p.Name,
		Items:   items,
		Total:   total,
		Average: round1(float64(total) / float64(len(items))),
		Highest: highest,
		Lowest:  lowest,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
