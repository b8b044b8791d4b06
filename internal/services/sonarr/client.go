package sonarr

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

// Client resolves and deletes series through the Sonarr v3 API.
type Client struct {
	baseURL      string
	apiKey       string
	lookupClient services.HTTPDoer
	deleteClient services.HTTPDoer
}

// New builds a Sonarr client with per-operation timeouts.
func New(baseURL, apiKey string, lookupTimeout, deleteTimeout time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:       strings.TrimSpace(apiKey),
		lookupClient: &http.Client{Timeout: lookupTimeout},
		deleteClient: &http.Client{Timeout: deleteTimeout},
	}
}

// NewWithClient builds a Sonarr client around a single injected HTTP client.
func NewWithClient(baseURL, apiKey string, doer services.HTTPDoer) *Client {
	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:       strings.TrimSpace(apiKey),
		lookupClient: doer,
		deleteClient: doer,
	}
}

// FindSeries resolves a TVDB id to the internal Sonarr series id.
func (c *Client) FindSeries(ctx context.Context, tvdbID string) (int64, error) {
	query := url.Values{}
	query.Set("tvdbId", tvdbID)
	endpoint := fmt.Sprintf("%s/api/v3/series?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build sonarr request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.lookupClient.Do(req)
	if err != nil {
		return 0, services.Wrap(services.ErrTransient, "sonarr", "find series", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return 0, services.Wrap(services.ErrTransient, "sonarr", "find series",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var series []struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return 0, services.Wrap(services.ErrTransient, "sonarr", "parse series lookup", err)
	}
	if len(series) == 0 {
		return 0, services.Wrap(services.ErrNotFound, "sonarr", "find series",
			fmt.Errorf("tvdb id %s not in library", tvdbID))
	}
	return series[0].ID, nil
}

// DeleteSeries removes the series and all of its files from Sonarr.
func (c *Client) DeleteSeries(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s/api/v3/series/%d?deleteFiles=true", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build sonarr delete: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.deleteClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "sonarr", "delete series", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "sonarr", "delete series",
			fmt.Errorf("series %d", id))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrTransient, "sonarr", "delete series",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return nil
}
