package pokedex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pokehub/pkg/models"
)

// DefaultMoveLimit is how many moves a move list shows.
const DefaultMoveLimit = 20

// MoveDisplayName upper-cases the first letter of every hyphen separated
// word and joins the words with spaces. The rest of each word is left as is.
func MoveDisplayName(raw string) string {
	words := strings.Split(raw, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// SummarizeMoves formats up to limit moves in upstream order. A limit <= 0
// falls back to DefaultMoveLimit.
func SummarizeMoves(p *Pokemon, limit int) (models.MoveSummary, error) {
	if err := Validate(p); err != nil {
		return models.MoveSummary{}, err
	}
	if limit <= 0 {
		limit = DefaultMoveLimit
	}

	n := min(limit, len(p.Moves))
	shown := make([]string, 0, n)
	for _, m := range p.Moves[:n] {
		shown = append(shown, MoveDisplayName(m.Move.Name))
	}

	return models.MoveSummary{
		Name:       p.Name,
		Shown:      shown,
		ShownCount: len(shown),
		TotalCount: len(p.Moves),
	}, nil
}
