package tautulli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"starsweep/internal/history"
	"starsweep/internal/services"
)

const userAgent = "Starsweep/0.1.0"

// Client fetches watch history from a Tautulli instance. Failures here are
// run-level transient: the whole run aborts and waits for the next tick.
type Client struct {
	baseURL string
	apiKey  string
	client  services.HTTPDoer
}

// New builds a Tautulli client with a bounded request timeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return NewWithClient(baseURL, apiKey, &http.Client{Timeout: timeout})
}

// NewWithClient builds a Tautulli client around an injected HTTP client.
func NewWithClient(baseURL, apiKey string, doer services.HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  doer,
	}
}

// History fetches the most recent watch events, newest first as Tautulli
// returns them. Rows the aggregator cannot use are still returned; filtering
// is the aggregator's concern.
func (c *Client) History(ctx context.Context, length int) ([]history.WatchEvent, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "tautulli", "fetch history", nil)
	}

	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("cmd", "get_history")
	query.Set("length", strconv.Itoa(length))
	endpoint := fmt.Sprintf("%s/api/v2?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tautulli request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "tautulli", "fetch history", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, services.Wrap(services.ErrTransient, "tautulli", "fetch history",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrTransient, "tautulli", "parse history", err)
	}
	if payload.Response.Result != "success" {
		return nil, services.Wrap(services.ErrTransient, "tautulli", "fetch history",
			fmt.Errorf("api result %q: %s", payload.Response.Result, payload.Response.Message))
	}

	events := make([]history.WatchEvent, 0, len(payload.Response.Data.Data))
	for _, row := range payload.Response.Data.Data {
		events = append(events, row.toEvent())
	}
	return events, nil
}

type apiResponse struct {
	Response struct {
		Result  string `json:"result"`
		Message string `json:"message"`
		Data    struct {
			Data []historyRow `json:"data"`
		} `json:"data"`
	} `json:"response"`
}

type historyRow struct {
	MediaType            string     `json:"media_type"`
	RatingKey            flexString `json:"rating_key"`
	GrandparentRatingKey flexString `json:"grandparent_rating_key"`
	FullTitle            string     `json:"full_title"`
	GrandparentTitle     string     `json:"grandparent_title"`
	GUID                 string     `json:"guid"`
	GrandparentGUID      string     `json:"grandparent_guid"`
	Date                 int64      `json:"date"`
	WatchedStatus        flexFloat  `json:"watched_status"`
	User                 string     `json:"user"`
	LibraryName          string     `json:"library_name"`
	UserRating           flexFloat  `json:"user_rating"`
}

func (r historyRow) toEvent() history.WatchEvent {
	return history.WatchEvent{
		MediaType:            r.MediaType,
		RatingKey:            string(r.RatingKey),
		GrandparentRatingKey: string(r.GrandparentRatingKey),
		Title:                r.FullTitle,
		GrandparentTitle:     r.GrandparentTitle,
		GUID:                 r.GUID,
		GrandparentGUID:      r.GrandparentGUID,
		WatchedAt:            time.Unix(r.Date, 0).UTC(),
		Watched:              r.WatchedStatus.Valid && r.WatchedStatus.Value >= 1,
		User:                 r.User,
		Library:              r.LibraryName,
		Rating:               r.UserRating.Value,
		HasRating:            r.UserRating.Valid,
	}
}

// flexString tolerates Tautulli returning identifiers as numbers or strings.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}
	*s = flexString(trimmed)
	return nil
}

// flexFloat tolerates numbers, numeric strings, and empty strings. Valid is
// false when the field carries no usable value.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil // unusable text rating, treat as absent
		}
		f.Value, f.Valid = value, true
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return err
	}
	f.Value, f.Valid = value, true
	return nil
}
