// Package mirror serves a directory of saved pokemon records in the same
// shape as the upstream API, so the api-server can run offline by pointing
// POKEHUB_API_BASE at it.
package mirror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Index maps both the name and the numeric id of every record to its bytes.
type Index struct {
	records map[string][]byte
	names   []string
}

// Load reads every *.json file in dir. A file that is not valid JSON or has
// no name fails the whole load so a bad file never gets served.
func Load(dir string) (*Index, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	idx := &Index{records: make(map[string][]byte, len(paths)*2)}
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var head struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &head); err != nil {
			return nil, fmt.Errorf("%s invalid JSON: %w", p, err)
		}
		name := strings.ToLower(strings.TrimSpace(head.Name))
		if name == "" {
			return nil, fmt.Errorf("%s: missing name", p)
		}
		if _, dup := idx.records[name]; dup {
			return nil, fmt.Errorf("%s: duplicate record %q", p, name)
		}

		idx.records[name] = b
		if head.ID > 0 {
			idx.records[strconv.Itoa(head.ID)] = b
		}
		idx.names = append(idx.names, name)
	}
	sort.Strings(idx.names)
	return idx, nil
}

func (idx *Index) Lookup(query string) ([]byte, bool) {
	b, ok := idx.records[strings.ToLower(strings.TrimSpace(query))]
	return b, ok
}

func (idx *Index) Names() []string { return idx.names }

type Handler struct {
	Index  *Index
	Logger *zap.Logger
}

func NewHandler(idx *Index, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Index: idx, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pokemon", h.list)
	rg.GET("/pokemon/:query", h.get)
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(h.Index.names), "results": h.Index.names})
}

func (h *Handler) get(c *gin.Context) {
	b, ok := h.Index.Lookup(c.Param("query"))
	if !ok {
		// upstream answers a plain "Not Found" body too
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	c.Data(http.StatusOK, "application/json", b)
}
