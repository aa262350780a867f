package pokemon

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokehub/internal/aggregate"
	"pokehub/internal/events"
	"pokehub/internal/pokeapi"
	"pokehub/internal/pokedex"
	"pokehub/internal/session"
	"pokehub/pkg/models"
)

// Fetcher is the upstream transport. *pokeapi.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, nameOrID string) (*pokeapi.FetchResult, error)
	FetchMany(ctx context.Context, queries []string) ([]*pokeapi.FetchResult, error)
}

type Handler struct {
	API    Fetcher
	Store  session.Store
	Hub    *events.Hub
	Logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewHandler(api Fetcher, store session.Store, hub *events.Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		API:    api,
		Store:  store,
		Hub:    hub,
		Logger: logger,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand swaps the random source, for deterministic picks.
func (h *Handler) WithRand(r *rand.Rand) *Handler {
	h.mu.Lock()
	h.rng = r
	h.mu.Unlock()
	return h
}

// RegisterRoutes mounts every route on rg. rg must run session.Middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pokemon/:query", h.search) // GET /pokemon/pikachu, /pokemon/25
	rg.GET("/random", h.random)

	cur := rg.Group("/current")
	cur.GET("", h.current)
	cur.GET("/raw", h.raw)
	cur.GET("/stats", h.stats)
	cur.GET("/moves", h.moves)
	cur.GET("/types", h.types)

	rg.GET("/compare", h.compare)
	rg.GET("/team/random", h.randomTeam)
	rg.POST("/team", h.team)
}

func (h *Handler) search(c *gin.Context) {
	h.searchFor(c, c.Param("query"))
}

func (h *Handler) random(c *gin.Context) {
	h.mu.Lock()
	id := pokeapi.RandomID(h.rng)
	h.mu.Unlock()
	h.searchFor(c, strconv.Itoa(id))
}

func (h *Handler) searchFor(c *gin.Context, query string) {
	if strings.TrimSpace(query) == "" {
		h.fail(c, pokedex.ErrEmptySelection)
		return
	}

	res, err := h.API.Fetch(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err)
		return
	}

	card, err := pokedex.Card(&res.Pokemon)
	if err != nil {
		h.fail(c, err)
		return
	}

	slot := session.Slot{Pokemon: res.Pokemon, Raw: res.Raw}
	if err := h.Store.Put(c.Request.Context(), session.ID(c), slot); err != nil {
		h.Logger.Error("store slot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.Hub.Publish(events.Event{
		Type:  events.TypeSearch,
		Names: []string{res.Pokemon.Name},
		IDs:   []int{res.Pokemon.ID},
		Types: res.Pokemon.TypeNames(),
	})

	c.JSON(http.StatusOK, card)
}

// loadCurrent writes the error response itself and returns nil when the
// session has nothing to show.
func (h *Handler) loadCurrent(c *gin.Context) *session.Slot {
	slot, err := h.Store.Get(c.Request.Context(), session.ID(c))
	if err != nil {
		h.Logger.Error("load slot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return nil
	}
	if slot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pokemon searched yet"})
		return nil
	}
	return slot
}

func (h *Handler) current(c *gin.Context) {
	slot := h.loadCurrent(c)
	if slot == nil {
		return
	}
	card, err := pokedex.Card(&slot.Pokemon)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) raw(c *gin.Context) {
	slot := h.loadCurrent(c)
	if slot == nil {
		return
	}
	view, err := pokedex.RawView(&slot.Pokemon, slot.Raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) stats(c *gin.Context) {
	slot := h.loadCurrent(c)
	if slot == nil {
		return
	}
	summary, err := pokedex.SummarizeStats(&slot.Pokemon)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) moves(c *gin.Context) {
	slot := h.loadCurrent(c)
	if slot == nil {
		return
	}
	limit := parseInt(c.Query("limit"), pokedex.DefaultMoveLimit)
	summary, err := pokedex.SummarizeMoves(&slot.Pokemon, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pokemon":     summary.Name,
		"shown":       summary.Shown,
		"shown_count": summary.ShownCount,
		"total_count": summary.TotalCount,
		"remaining":   summary.Remaining(),
	})
}

func (h *Handler) types(c *gin.Context) {
	slot := h.loadCurrent(c)
	if slot == nil {
		return
	}
	summary, err := pokedex.TypeSummary(&slot.Pokemon)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) compare(c *gin.Context) {
	a, b := c.Query("a"), c.Query("b")
	if err := aggregate.ValidatePair(a, b); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.API.FetchMany(c.Request.Context(), []string{a, b})
	if err != nil {
		h.fail(c, err)
		return
	}

	cmp, err := aggregate.Compare(&res[0].Pokemon, &res[1].Pokemon)
	if err != nil {
		h.fail(c, err)
		return
	}
	left, err := pokedex.Card(&cmp.Left)
	if err != nil {
		h.fail(c, err)
		return
	}
	right, err := pokedex.Card(&cmp.Right)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Hub.Publish(events.Event{
		Type:   events.TypeCompare,
		Names:  []string{cmp.LeftName, cmp.RightName},
		IDs:    []int{cmp.Left.ID, cmp.Right.ID},
		Totals: []int{cmp.LeftTotal, cmp.RightTotal},
		Winner: cmp.Winner,
	})

	c.JSON(http.StatusOK, gin.H{
		"left":        left,
		"right":       right,
		"left_total":  cmp.LeftTotal,
		"right_total": cmp.RightTotal,
		"winner":      cmp.Winner,
	})
}

func (h *Handler) randomTeam(c *gin.Context) {
	h.mu.Lock()
	ids := pokeapi.RandomTeamIDs(h.rng, aggregate.TeamSize)
	h.mu.Unlock()

	h.buildTeam(c, pokeapi.Queries(ids))
}

type teamReq struct {
	Members []string `json:"members"`
}

func (h *Handler) team(c *gin.Context) {
	var req teamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.Members) != aggregate.TeamSize {
		h.fail(c, &pokedex.TeamSizeError{Got: len(req.Members), Want: aggregate.TeamSize})
		return
	}

	seen := make(map[string]struct{}, len(req.Members))
	for _, m := range req.Members {
		key := strings.ToLower(strings.TrimSpace(m))
		if key == "" {
			h.fail(c, pokedex.ErrEmptySelection)
			return
		}
		if _, dup := seen[key]; dup {
			h.fail(c, pokedex.ErrDuplicateMember)
			return
		}
		seen[key] = struct{}{}
	}

	h.buildTeam(c, req.Members)
}

func (h *Handler) buildTeam(c *gin.Context, queries []string) {
	res, err := h.API.FetchMany(c.Request.Context(), queries)
	if err != nil {
		h.fail(c, err)
		return
	}

	members := make([]*models.Pokemon, 0, len(res))
	ids := make(map[int]struct{}, len(res))
	for _, r := range res {
		// "pikachu" and "25" are different queries for the same record
		if _, dup := ids[r.Pokemon.ID]; dup {
			h.fail(c, pokedex.ErrDuplicateMember)
			return
		}
		ids[r.Pokemon.ID] = struct{}{}
		members = append(members, &r.Pokemon)
	}

	summary, err := aggregate.SummarizeTeam(members)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing := make([]models.TeamMember, 0, len(members))
	names := make([]string, 0, len(members))
	memberIDs := make([]int, 0, len(members))
	for i, m := range members {
		listing = append(listing, pokedex.TeamMember(m, summary.MemberTotals[i]))
		names = append(names, m.Name)
		memberIDs = append(memberIDs, m.ID)
	}

	h.Hub.Publish(events.Event{
		Type:  events.TypeTeam,
		Names: names,
		IDs:   memberIDs,
		Types: summary.DistinctTypes,
	})

	c.JSON(http.StatusOK, gin.H{
		"members":            listing,
		"distinct_types":     summary.DistinctTypes,
		"type_count":         len(summary.DistinctTypes),
		"average_total_stat": summary.AverageTotalStat,
	})
}

// fail maps a domain error onto a status code. The action is abandoned:
// nothing else has been written for this request.
func (h *Handler) fail(c *gin.Context, err error) {
	var (
		notFound  *pokedex.NotFoundError
		malformed *pokedex.MalformedRecordError
		teamSize  *pokedex.TeamSizeError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pokedex.ErrEmptySelection),
		errors.Is(err, pokedex.ErrIdenticalSelection),
		errors.Is(err, pokedex.ErrDuplicateMember),
		errors.As(err, &teamSize):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &malformed), errors.Is(err, pokedex.ErrEmptyStats):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
