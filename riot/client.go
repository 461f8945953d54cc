package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 10 * time.Second

	// maxRateLimitRetries bounds how many consecutive 429 responses a single
	// request will wait out before giving up
	maxRateLimitRetries = 5
)

// APIError is returned for non-200 responses from the Riot API
type APIError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot api request %s failed: %s", e.URL, e.Status)
}

// Client issues authenticated requests against the Riot API
type Client struct {
	httpClient *http.Client
	apiKey     string

	// baseURL resolves a region code to its platform base URL.
	// Tests swap this out to point at a local server.
	baseURL func(region string) (string, error)

	// retryAfter computes the wait after a 429 response.
	// Tests swap this out to avoid real sleeps.
	retryAfter func(resp *http.Response) time.Duration
}

// NewClient creates a new Riot API client using the given API key
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		baseURL:    BaseURL,
		retryAfter: retryAfter,
	}
}

// LeagueEntries fetches the ladder entries for a region, tier and division.
// Apex tiers return the entire league; the page parameter only applies to
// the paginated entries endpoint.
func (c *Client) LeagueEntries(ctx context.Context, region, tier, division string, page int) ([]LeagueEntry, error) {
	base, err := c.baseURL(region)
	if err != nil {
		return nil, err
	}
	path, err := LeaguePath(tier, division, page)
	if err != nil {
		return nil, err
	}

	if IsApexTier(tier) {
		var league LeagueList
		if err := c.get(ctx, base+path, &league); err != nil {
			return nil, fmt.Errorf("failed to fetch %s league for region %s: %w", tier, region, err)
		}
		return league.Entries, nil
	}

	var entries []LeagueEntry
	if err := c.get(ctx, base+path, &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s entries page %d for region %s: %w",
			tier, division, page, region, err)
	}
	return entries, nil
}

// SummonerByID fetches the full summoner record for an encrypted summoner ID
func (c *Client) SummonerByID(ctx context.Context, region, summonerID string) (*Summoner, error) {
	base, err := c.baseURL(region)
	if err != nil {
		return nil, err
	}

	var summoner Summoner
	if err := c.get(ctx, base+SummonerPath(summonerID), &summoner); err != nil {
		return nil, fmt.Errorf("failed to fetch summoner %s for region %s: %w", summonerID, region, err)
	}
	return &summoner, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
// A 429 response is waited out per its Retry-After header and retried.
func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach riot api: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if attempt >= maxRateLimitRetries {
				return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
			}
			wait := c.retryAfter(resp)
			log.WithFields(log.Fields{
				"url":     url,
				"wait":    wait,
				"attempt": attempt + 1,
			}).Warn("Rate limit hit, waiting before retry")
			if err := sleepContext(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
		return nil
	}
}

// retryAfter returns how long to wait after a 429, one second past the
// server-provided Retry-After value
func retryAfter(resp *http.Response) time.Duration {
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		seconds = 1
	}
	return time.Duration(seconds+1) * time.Second
}

// sleepContext sleeps for d or until the context is cancelled
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
