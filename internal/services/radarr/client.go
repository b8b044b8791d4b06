package radarr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"starsweep/internal/services"
)

// Client resolves and deletes movies through the Radarr v3 API. Lookup and
// delete use separate timeouts because deletes also remove files from disk.
type Client struct {
	baseURL      string
	apiKey       string
	lookupClient services.HTTPDoer
	deleteClient services.HTTPDoer
}

// New builds a Radarr client with per-operation timeouts.
func New(baseURL, apiKey string, lookupTimeout, deleteTimeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:       strings.TrimSpace(apiKey),
		lookupClient: &http.Client{Timeout: lookupTimeout},
		deleteClient: &http.Client{Timeout: deleteTimeout},
	}
}

// NewWithClient builds a Radarr client around a single injected HTTP client.
func NewWithClient(baseURL, apiKey string, doer services.HTTPDoer) *Client {
	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:       strings.TrimSpace(apiKey),
		lookupClient: doer,
		deleteClient: doer,
	}
}

// FindMovie resolves a TMDB id to the internal Radarr movie id.
func (c *Client) FindMovie(ctx context.Context, tmdbID string) (int64, error) {
	query := url.Values{}
	query.Set("tmdbId", tmdbID)
	endpoint := fmt.Sprintf("%s/api/v3/movie?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build radarr request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.lookupClient.Do(req)
	if err != nil {
		return 0, services.Wrap(services.ErrTransient, "radarr", "find movie", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return 0, services.Wrap(services.ErrTransient, "radarr", "find movie",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var movies []struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		return 0, services.Wrap(services.ErrTransient, "radarr", "parse movie lookup", err)
	}
	if len(movies) == 0 {
		return 0, services.Wrap(services.ErrNotFound, "radarr", "find movie",
			fmt.Errorf("tmdb id %s not in library", tmdbID))
	}
	return movies[0].ID, nil
}

// DeleteMovie removes the movie and its files from Radarr. The movie is not
// added to the import exclusion list so it can be re-added later.
func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s/api/v3/movie/%d?deleteFiles=true&addImportExclusion=false", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build radarr delete: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.deleteClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "radarr", "delete movie", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "radarr", "delete movie",
			fmt.Errorf("movie %d", id))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrTransient, "radarr", "delete movie",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return nil
}
