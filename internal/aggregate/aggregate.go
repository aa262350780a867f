// Package aggregate derives values that span more than one record: the
// head-to-head comparison and the team summary.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"pokehub/internal/pokedex"
	"pokehub/pkg/models"
)

// TeamSize is the number of members in a team.
const TeamSize = 6

// TotalBaseStat sums every base stat of p, whatever the stats are called.
func TotalBaseStat(p *models.Pokemon) (int, error) {
	if p == nil || p.Stats == nil {
		return 0, &pokedex.MalformedRecordError{Field: "stats"}
	}
	total := 0
	for _, s := range p.Stats {
		total += s.BaseStat
	}
	return total, nil
}

// ValidatePair checks the two search terms of a comparison before anything
// is fetched: both must be non-empty and they must differ ignoring case.
func ValidatePair(a, b string) error {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return pokedex.ErrEmptySelection
	}
	if strings.EqualFold(a, b) {
		return pokedex.ErrIdenticalSelection
	}
	return nil
}

// Compare puts two records head to head on total base stat. The higher
// total wins; equal totals give models.WinnerTie.
func Compare(left, right *models.Pokemon) (models.Comparison, error) {
	if left == nil || right == nil {
		return models.Comparison{}, &pokedex.MalformedRecordError{Field: "record"}
	}
	if err := ValidatePair(left.Name, right.Name); err != nil {
		return models.Comparison{}, err
	}

	lt, err := TotalBaseStat(left)
	if err != nil {
		return models.Comparison{}, err
	}
	rt, err := TotalBaseStat(right)
	if err != nil {
		return models.Comparison{}, err
	}

	winner := models.WinnerTie
	switch {
	case lt > rt:
		winner = left.Name
	case rt > lt:
		winner = right.Name
	}

	return models.Comparison{
		Left:       *left,
		Right:      *right,
		LeftName:   left.Name,
		RightName:  right.Name,
		LeftTotal:  lt,
		RightTotal: rt,
		Winner:     winner,
	}, nil
}

// IsTie reports whether a comparison winner is the tie sentinel, in any case.
func IsTie(winner string) bool {
	return strings.EqualFold(winner, models.WinnerTie)
}

// SummarizeTeam computes type coverage and average power of a full team.
// Members must carry distinct ids; the caller guarantees that when it picks
// them and it is not checked again here.
func SummarizeTeam(members []*models.Pokemon) (models.TeamSummary, error) {
	if len(members) != TeamSize {
		return models.TeamSummary{}, &pokedex.TeamSizeError{Got: len(members), Want: TeamSize}
	}

	seen := make(map[string]struct{})
	copies := make([]models.Pokemon, 0, len(members))
	totals := make([]int, 0, len(members))
	sum := 0
	for _, m := range members {
		if m == nil {
			return models.TeamSummary{}, &pokedex.MalformedRecordError{Field: "record"}
		}
		if m.Types == nil {
			return models.TeamSummary{}, &pokedex.MalformedRecordError{Field: "types"}
		}
		total, err := TotalBaseStat(m)
		if err != nil {
			return models.TeamSummary{}, err
		}
		sum += total
		totals = append(totals, total)
		for _, t := range m.Types {
			seen[t.Type.Name] = struct{}{}
		}
		copies = append(copies, *m)
	}

	types := make([]string, 0, len(seen))
	for name := range seen {
		types = append(types, name)
	}
	sort.Strings(types)

	return models.TeamSummary{
		Members:          copies,
		MemberTotals:     totals,
		DistinctTypes:    types,
		AverageTotalStat: roundHalfUp(float64(sum) / TeamSize),
	}, nil
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
