package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pokehub/internal/pokedex"
	"pokehub/pkg/models"
)

// PokeAPI base (public)
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client fetches pokemon records from PokeAPI or anything serving the same
// /pokemon/{nameOrId} shape (see cmd/mirror-server).
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string
	Logger    *zap.Logger
}

// FetchResult is a decoded record together with the exact bytes it was
// decoded from, so the raw view can show the payload unchanged.
type FetchResult struct {
	Pokemon models.Pokemon
	Raw     []byte
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: "pokehub/1.0",
		Logger:    logger,
	}
}

// Fetch loads one record by name or numeric id. The query is trimmed and
// lower-cased first. There is no retry: any transport failure or non-2xx
// answer is reported as *pokedex.NotFoundError.
func (c *Client) Fetch(ctx context.Context, nameOrID string) (*FetchResult, error) {
	query := strings.ToLower(strings.TrimSpace(nameOrID))
	if query == "" {
		return nil, pokedex.ErrEmptySelection
	}

	endpoint := c.BaseURL + "/pokemon/" + url.PathEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("fetch failed", zap.String("query", query), zap.Error(err))
		return nil, &pokedex.NotFoundError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pokedex.NotFoundError{Query: query, Status: resp.StatusCode, Err: err}
	}

	c.Logger.Debug("fetched",
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &pokedex.NotFoundError{Query: query, Status: resp.StatusCode}
	}

	var p models.Pokemon
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &pokedex.MalformedRecordError{Field: "body", Err: err}
	}
	if err := pokedex.Validate(&p); err != nil {
		return nil, err
	}

	return &FetchResult{Pokemon: p, Raw: body}, nil
}

// FetchMany fetches every query concurrently and returns the results in
// query order. It is all or nothing: the first failure cancels the rest and
// is returned without any partial results.
func (c *Client) FetchMany(ctx context.Context, queries []string) ([]*FetchResult, error) {
	out := make([]*FetchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			res, err := c.Fetch(gctx, q)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
