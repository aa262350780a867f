package mirror

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokehub/internal/pokeapi"
)

func writeRecord(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
}

func TestLoadIndexesNameAndID(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "pikachu.json", `{"id":25,"name":"Pikachu"}`)

	idx, err := Load(dir)
	require.NoError(t, err)

	_, ok := idx.Lookup("pikachu")
	assert.True(t, ok)
	_, ok = idx.Lookup(" 25 ")
	assert.True(t, ok)
	_, ok = idx.Lookup("raichu")
	assert.False(t, ok)
	assert.Equal(t, []string{"pikachu"}, idx.Names())
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"invalid json": `{"id":`,
		"no name":      `{"id":1}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeRecord(t, dir, "x.json", body)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestShippedDataServesTheClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	idx, err := Load(filepath.Join("..", "..", "data", "pokemon"))
	require.NoError(t, err)
	require.NotEmpty(t, idx.Names())

	r := gin.New()
	NewHandler(idx, nil).RegisterRoutes(r.Group(""))
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := pokeapi.New(srv.URL, 5*time.Second, nil)

	res, err := client.Fetch(t.Context(), "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, 25, res.Pokemon.ID)
	assert.Len(t, res.Pokemon.Moves, 25)

	res, err = client.Fetch(t.Context(), "6")
	require.NoError(t, err)
	assert.Equal(t, "charizard", res.Pokemon.Name)

	_, err = client.Fetch(t.Context(), "missingno")
	assert.Error(t, err)

	resp, err := http.Get(srv.URL + "/pokemon")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExportThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	results := []*pokeapi.FetchResult{
		{Raw: []byte(`{"id":25,"name":"pikachu","stats":[]}`)},
		{Raw: []byte(`{"id":6,"name":"charizard","stats":[]}`)},
	}
	results[0].Pokemon.ID, results[0].Pokemon.Name = 25, "pikachu"
	results[1].Pokemon.ID, results[1].Pokemon.Name = 6, "charizard"

	paths, err := Export(dir, results)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	idx, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"charizard", "pikachu"}, idx.Names())
	_, ok := idx.Lookup("6")
	assert.True(t, ok)
}

func TestExportRejectsPathNames(t *testing.T) {
	res := &pokeapi.FetchResult{Raw: []byte(`{}`)}
	res.Pokemon.Name = "../evil"
	_, err := Export(t.TempDir(), []*pokeapi.FetchResult{res})
	assert.Error(t, err)
}
