package pokeapi

import (
	"math/rand/v2"
	"strconv"
)

// MaxID is the highest id handed out by the random pickers.
const MaxID = 1010

// RandomID returns an id in [1, MaxID].
func RandomID(r *rand.Rand) int {
	return r.IntN(MaxID) + 1
}

// RandomTeamIDs returns n distinct ids in [1, MaxID], in draw order.
// n is capped at MaxID.
func RandomTeamIDs(r *rand.Rand, n int) []int {
	n = min(max(n, 0), MaxID)
	ids := make([]int, 0, n)
	seen := make(map[int]struct{}, n)
	for len(ids) < n {
		id := RandomID(r)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Queries converts ids into fetch queries.
func Queries(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.Itoa(id))
	}
	return out
}
