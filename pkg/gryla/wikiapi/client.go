// Package wikiapi fetches page revisions through the MediaWiki API.
package wikiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the protocol wiki's API endpoint.
const DefaultBaseURL = "https://minecraft.wiki/api.php"

// Client fetches wiki revisions. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given API endpoint. An empty baseURL
// selects DefaultBaseURL; a nil httpClient gets a 30 second timeout default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// revisionResponse mirrors the slice of the MediaWiki query response the
// miner needs: pages -> revisions -> main slot content.
type revisionResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Revisions []struct {
				Slots map[string]struct {
					Content string `json:"*"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// FetchRevision returns the main-slot wikitext of one page revision,
// identified by its numeric revision id.
func (c *Client) FetchRevision(ctx context.Context, revisionID int64) (string, error) {
	q := url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"prop":    {"revisions"},
		"rvslots": {"*"},
		"rvprop":  {"content"},
		"revids":  {strconv.FormatInt(revisionID, 10)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching revision %d: %w", revisionID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching revision %d: unexpected status %s", revisionID, resp.Status)
	}

	var payload revisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding revision %d: %w", revisionID, err)
	}

	for _, page := range payload.Query.Pages {
		for _, rev := range page.Revisions {
			if slot, ok := rev.Slots["main"]; ok && slot.Content != "" {
				return slot.Content, nil
			}
		}
	}
	return "", fmt.Errorf("revision %d has no main-slot content", revisionID)
}
