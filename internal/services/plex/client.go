package plex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"starsweep/internal/services"
)

// activityFeedQuery asks the Plex community metadata service for the public
// activity feed of one item; rated entries carry the reviewer's score.
const activityFeedQuery = `query ActivityFeed($metadataID: ID!) {
  activityFeed(first: 50, id: $metadataID) {
    nodes {
      ... on ActivityRating {
        rating
      }
      ... on ActivityWatchRating {
        rating
      }
    }
  }
}`

// Client talks to both the local Plex server (personal ratings, series leaf
// counts) and the hosted community metadata endpoint (public ratings).
type Client struct {
	serverURL    string
	communityURL string
	token        string
	client       services.HTTPDoer
}

// New builds a Plex client with a bounded request timeout.
func New(serverURL, communityURL, token string, timeout time.Duration) *Client {
	return NewWithClient(serverURL, communityURL, token, &http.Client{Timeout: timeout})
}

// NewWithClient builds a Plex client around an injected HTTP client.
func NewWithClient(serverURL, communityURL, token string, doer services.HTTPDoer) *Client {
	return &Client{
		serverURL:    strings.TrimRight(strings.TrimSpace(serverURL), "/"),
		communityURL: strings.TrimSpace(communityURL),
		token:        strings.TrimSpace(token),
		client:       doer,
	}
}

// CommunityRatings returns every public rating attached to the item's
// community activity feed. An empty slice means nobody has rated it; the
// caller decides whether that keeps or skips the item.
func (c *Client) CommunityRatings(ctx context.Context, guid string) ([]float64, error) {
	metadataID := metadataIDFromGUID(guid)
	if metadataID == "" {
		return nil, services.Wrap(services.ErrNotFound, "plex", "community ratings",
			fmt.Errorf("guid %q has no metadata id", guid))
	}

	payload := map[string]any{
		"query": activityFeedQuery,
		"variables": map[string]string{
			"metadataID": metadataID,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode community query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.communityURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build community request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "plex", "community ratings", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrTransient, "plex", "community ratings",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var decoded struct {
		Data struct {
			ActivityFeed struct {
				Nodes []struct {
					Rating *float64 `json:"rating"`
				} `json:"nodes"`
			} `json:"activityFeed"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, services.Wrap(services.ErrTransient, "plex", "parse community ratings", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, services.Wrap(services.ErrTransient, "plex", "community ratings",
			fmt.Errorf("graphql: %s", decoded.Errors[0].Message))
	}

	var ratings []float64
	for _, node := range decoded.Data.ActivityFeed.Nodes {
		if node.Rating != nil {
			ratings = append(ratings, *node.Rating)
		}
	}
	return ratings, nil
}

// PersonalRating returns the server owner's star rating for the item on the
// native 5-point scale. The second return is false when the item is unrated.
func (c *Client) PersonalRating(ctx context.Context, ratingKey string) (float64, bool, error) {
	item, err := c.fetchMetadata(ctx, ratingKey)
	if err != nil {
		return 0, false, err
	}
	if item.UserRating == nil {
		return 0, false, nil
	}
	return *item.UserRating, true, nil
}

// SeriesWatchedFraction reports viewed leaves over total leaves for a series,
// 1.0 meaning every episode Plex knows about has been watched.
func (c *Client) SeriesWatchedFraction(ctx context.Context, ratingKey string) (float64, error) {
	item, err := c.fetchMetadata(ctx, ratingKey)
	if err != nil {
		return 0, err
	}
	if item.LeafCount == nil || *item.LeafCount == 0 {
		return 0, services.Wrap(services.ErrNotFound, "plex", "series leaf counts",
			fmt.Errorf("rating key %s has no leaf count", ratingKey))
	}
	viewed := 0
	if item.ViewedLeafCount != nil {
		viewed = *item.ViewedLeafCount
	}
	return float64(viewed) / float64(*item.LeafCount), nil
}

type metadataItem struct {
	UserRating      *float64 `json:"userRating"`
	LeafCount       *int     `json:"leafCount"`
	ViewedLeafCount *int     `json:"viewedLeafCount"`
}

func (c *Client) fetchMetadata(ctx context.Context, ratingKey string) (*metadataItem, error) {
	if c.serverURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "plex", "fetch metadata", nil)
	}
	endpoint := fmt.Sprintf("%s/library/metadata/%s", c.serverURL, ratingKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "plex", "fetch metadata", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "plex", "fetch metadata",
			fmt.Errorf("rating key %s", ratingKey))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, services.Wrap(services.ErrTransient, "plex", "fetch metadata",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var decoded struct {
		MediaContainer struct {
			Metadata []metadataItem `json:"Metadata"`
		} `json:"MediaContainer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, services.Wrap(services.ErrTransient, "plex", "parse metadata", err)
	}
	if len(decoded.MediaContainer.Metadata) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "plex", "fetch metadata",
			fmt.Errorf("rating key %s has no metadata", ratingKey))
	}
	return &decoded.MediaContainer.Metadata[0], nil
}

// metadataIDFromGUID strips the query string from a plex:// GUID and returns
// its trailing path segment, e.g. plex://movie/5d776b59ad5437001f79c6f8?lang=en
// becomes 5d776b59ad5437001f79c6f8. Legacy agent and local GUIDs carry no
// community metadata id.
func metadataIDFromGUID(guid string) string {
	trimmed := strings.TrimSpace(guid)
	if idx := strings.Index(trimmed, "?"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	rest, ok := strings.CutPrefix(trimmed, "plex://")
	if !ok {
		return ""
	}
	rest = strings.TrimRight(rest, "/")
	if idx := strings.LastIndex(rest, "/"); idx >= 0 {
		rest = rest[idx+1:]
	}
	return rest
}
