package mirror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pokehub/internal/pokeapi"
)

// Export writes each fetched record to dir/<name>.json, indented, and
// returns the paths written. Existing files are replaced.
func Export(dir string, results []*pokeapi.FetchResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(results))
	for _, r := range results {
		name := strings.ToLower(strings.TrimSpace(r.Pokemon.Name))
		if name == "" || strings.ContainsAny(name, `/\`) {
			return paths, fmt.Errorf("record %d: unusable name %q", r.Pokemon.ID, r.Pokemon.Name)
		}

		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
			return paths, fmt.Errorf("record %s: %w", name, err)
		}
		buf.WriteByte('\n')

		p := filepath.Join(dir, name+".json")
		if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
