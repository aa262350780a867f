package pokemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokehub/internal/events"
	"pokehub/internal/pokeapi"
	"pokehub/internal/session"
	"pokehub/pkg/database"
)

func fixture(id int, name string, types []string, stats []int, moves int) string {
	var ts, ss, ms []string
	for i, t := range types {
		ts = append(ts, fmt.Sprintf(`{"slot":%d,"type":{"name":%q}}`, i+1, t))
	}
	names := []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}
	for i, v := range stats {
		ss = append(ss, fmt.Sprintf(`{"base_stat":%d,"stat":{"name":%q}}`, v, names[i%6]))
	}
	for i := 0; i < moves; i++ {
		ms = append(ms, fmt.Sprintf(`{"move":{"name":"move-number-%d"}}`, i))
	}
	return fmt.Sprintf(`{"id":%d,"name":%q,"height":4,"weight":60,"types":[%s],"stats":[%s],"moves":[%s],"sprites":{"front_default":null}}`,
		id, name, strings.Join(ts, ","), strings.Join(ss, ","), strings.Join(ms, ","))
}

var upstreamRecords = map[string]string{
	"pikachu":   fixture(25, "pikachu", []string{"electric"}, []int{35, 55, 40, 50, 50, 90}, 25),
	"charizard": fixture(6, "charizard", []string{"fire", "flying"}, []int{78, 84, 78, 109, 85, 100}, 3),
	"alpha":     fixture(901, "alpha", []string{"electric"}, []int{100, 100, 100}, 0),
	"beta":      fixture(902, "beta", []string{"fire"}, []int{50, 150, 100}, 0),
	"gamma":     fixture(903, "gamma", []string{"electric"}, []int{300}, 0),
	"delta":     fixture(904, "delta", []string{"water"}, []int{300}, 0),
	"epsilon":   fixture(905, "epsilon", []string{"grass"}, []int{300}, 0),
	"zeta":      fixture(906, "zeta", []string{"fire"}, []int{303}, 0),
	"eta":       fixture(907, "eta", []string{"electric"}, []int{300}, 0),
	"theta":     fixture(908, "theta", []string{"fire"}, []int{300}, 0),
	"nostats":   `{"id":999,"name":"nostats","types":[],"moves":[]}`,
}

type testEnv struct {
	router *gin.Engine
	hub    *events.Hub
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		if q == "25" {
			q = "pikachu"
		}
		if body, ok := upstreamRecords[q]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		if id, err := strconv.Atoi(q); err == nil {
			_, _ = w.Write([]byte(fixture(id, "mon-"+q, []string{"normal"}, []int{id % 256}, 1)))
			return
		}
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	t.Cleanup(upstream.Close)

	store, err := session.OpenSQLite(database.Config{Path: "file:" + uuid.NewString() + "?mode=memory&cache=shared"}, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hub := events.NewHub(nil)
	h := NewHandler(pokeapi.New(upstream.URL, 5*time.Second, nil), store, hub, nil).
		WithRand(rand.New(rand.NewPCG(7, 7)))

	tokens := session.TokenService{Secret: []byte("test"), Issuer: "pokehub", Duration: time.Hour}
	r := gin.New()
	api := r.Group("/")
	api.Use(session.Middleware(tokens))
	h.RegisterRoutes(api)

	return &testEnv{router: r, hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(session.HeaderToken, token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestSearchThenViews(t *testing.T) {
	env := newEnv(t)

	w, card := env.do(t, http.MethodGet, "/pokemon/Pikachu", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := w.Header().Get(session.HeaderToken)
	require.NotEmpty(t, token)
	assert.Equal(t, "pikachu", card["name"])
	assert.Equal(t, 0.4, card["height_m"])
	assert.Equal(t, 6.0, card["weight_kg"])

	w, stats := env.do(t, http.MethodGet, "/current/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 320, stats["total"])
	assert.Equal(t, 53.3, stats["average"])
	assert.Equal(t, "SPEED", stats["highest"].(map[string]any)["name"])

	w, moves := env.do(t, http.MethodGet, "/current/moves", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 20, moves["shown_count"])
	assert.EqualValues(t, 25, moves["total_count"])
	assert.EqualValues(t, 5, moves["remaining"])
	assert.Equal(t, "Move Number 0", moves["shown"].([]any)[0])

	w, moves = env.do(t, http.MethodGet, "/current/moves?limit=3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, moves["shown_count"])

	w, types := env.do(t, http.MethodGet, "/current/types", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "electric", types["composition"])

	w, raw := env.do(t, http.MethodGet, "/current/raw", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 8, raw["property_count"])

	w, cur := env.do(t, http.MethodGet, "/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pikachu", cur["name"])
}

func TestSessionsAreIsolated(t *testing.T) {
	env := newEnv(t)

	w, _ := env.do(t, http.MethodGet, "/pokemon/pikachu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Header().Get(session.HeaderToken)

	w, _ = env.do(t, http.MethodGet, "/pokemon/charizard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := w.Header().Get(session.HeaderToken)

	_, cur := env.do(t, http.MethodGet, "/current", first, nil)
	assert.Equal(t, "pikachu", cur["name"])
	_, cur = env.do(t, http.MethodGet, "/current", second, nil)
	assert.Equal(t, "charizard", cur["name"])
}

func TestCurrentWithoutSearch(t *testing.T) {
	env := newEnv(t)
	for _, path := range []string{"/current", "/current/raw", "/current/stats", "/current/moves", "/current/types"} {
		w, body := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "no pokemon searched yet", body["error"])
	}
}

func TestSearchFailureKeepsPreviousSlot(t *testing.T) {
	env := newEnv(t)

	w, _ := env.do(t, http.MethodGet, "/pokemon/pikachu", "", nil)
	token := w.Header().Get(session.HeaderToken)

	w, body := env.do(t, http.MethodGet, "/pokemon/missingno", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["error"], "missingno")

	w, body = env.do(t, http.MethodGet, "/pokemon/nostats", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body["error"], "stats")

	_, cur := env.do(t, http.MethodGet, "/current", token, nil)
	assert.Equal(t, "pikachu", cur["name"])
}

func TestRandomSearch(t *testing.T) {
	env := newEnv(t)
	w, card := env.do(t, http.MethodGet, "/random", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := int(card["id"].(float64))
	assert.GreaterOrEqual(t, id, 1)
	assert.LessOrEqual(t, id, pokeapi.MaxID)
}

func TestCompare(t *testing.T) {
	env := newEnv(t)

	w, body := env.do(t, http.MethodGet, "/compare?a=pikachu&b=charizard", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "charizard", body["winner"])
	assert.EqualValues(t, 320, body["left_total"])
	assert.EqualValues(t, 534, body["right_total"])

	w, body = env.do(t, http.MethodGet, "/compare?a=alpha&b=beta", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tie", body["winner"])
}

func TestCompareErrors(t *testing.T) {
	env := newEnv(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"identical", "a=Pikachu&b=pikachu", http.StatusBadRequest},
		{"missing side", "a=pikachu", http.StatusBadRequest},
		{"same record by name and id", "a=pikachu&b=25", http.StatusBadRequest},
		{"name and other id", "a=pikachu&b=6", http.StatusOK},
		{"unknown", "a=pikachu&b=missingno", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := env.do(t, http.MethodGet, "/compare?"+tt.query, "", nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestTeam(t *testing.T) {
	env := newEnv(t)

	w, body := env.do(t, http.MethodPost, "/team", "", gin.H{
		"members": []string{"gamma", "theta", "eta", "delta", "epsilon", "zeta"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []any{"electric", "fire", "water", "grass"}, body["distinct_types"])
	assert.EqualValues(t, 4, body["type_count"])
	assert.EqualValues(t, 301, body["average_total_stat"])
	require.Len(t, body["members"], 6)

	sum := 0.0
	for _, m := range body["members"].([]any) {
		sum += m.(map[string]any)["total_stat"].(float64)
	}
	assert.Equal(t, 1803.0, sum)
	assert.Equal(t, "zeta", body["members"].([]any)[5].(map[string]any)["name"])
	assert.EqualValues(t, 303, body["members"].([]any)[5].(map[string]any)["total_stat"])
}

func TestTeamErrors(t *testing.T) {
	env := newEnv(t)

	tests := []struct {
		name    string
		members []string
		status  int
	}{
		{"too few", []string{"gamma", "theta"}, http.StatusBadRequest},
		{"duplicate name", []string{"gamma", "GAMMA", "eta", "delta", "epsilon", "zeta"}, http.StatusBadRequest},
		{"empty member", []string{"gamma", " ", "eta", "delta", "epsilon", "zeta"}, http.StatusBadRequest},
		{"same record twice", []string{"pikachu", "25", "eta", "delta", "epsilon", "zeta"}, http.StatusBadRequest},
		{"one unknown", []string{"gamma", "missingno", "eta", "delta", "epsilon", "zeta"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := env.do(t, http.MethodPost, "/team", "", gin.H{"members": tt.members})
			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, body, "members")
		})
	}
}

func TestRandomTeam(t *testing.T) {
	env := newEnv(t)

	w, body := env.do(t, http.MethodGet, "/team/random", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	members := body["members"].([]any)
	require.Len(t, members, 6)

	seen := map[float64]bool{}
	for _, m := range members {
		id := m.(map[string]any)["id"].(float64)
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Contains(t, body["distinct_types"], "normal")
	assert.NotNil(t, body["average_total_stat"])
}
