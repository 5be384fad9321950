// Package cmr provides a granule-search client for NASA's Common Metadata
// Repository (CMR) API.
package cmr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the default CMR API base URL.
	DefaultBaseURL = "https://cmr.earthdata.nasa.gov/search"

	// DefaultProvider is the CMR provider holding NSIDC data pool granules.
	DefaultProvider = "NSIDC_ECS"

	// DefaultPageSize is the default number of results per page.
	DefaultPageSize = 100

	// searchAfterHeader carries the cursor for stateless pagination.
	searchAfterHeader = "CMR-Search-After"

	// hitsHeader carries the total match count for a query.
	hitsHeader = "CMR-Hits"
)

// Client handles communication with the CMR API.
type Client struct {
	baseURL    string
	provider   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new CMR API client. The timeout bounds each search
// request regardless of the httpClient's own; a nil httpClient gets a
// default transport, and callers pass an authenticated client when the
// provider requires Earthdata login.
func NewClient(baseURL, provider string, timeout time.Duration, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if provider == "" {
		provider = DefaultProvider
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:    baseURL,
		provider:   provider,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     slog.Default(),
	}
}

// WithLogger sets a custom logger for the client.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// SearchResult contains one page of a CMR granule search.
type SearchResult struct {
	Entries     []Entry
	Hits        int
	SearchAfter string // Cursor for next page
}

// Search performs one page of a granule search against CMR.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*SearchResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	searchURL := c.baseURL + "/granules.json"

	queryParams := params.ToURLValues()
	queryParams.Set("provider", c.provider)

	c.logger.DebugContext(ctx, "executing CMR granule search",
		slog.String("url", searchURL),
		slog.String("params", queryParams.Encode()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?"+queryParams.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "nsidc-subset/1.0")
	if params.SearchAfter != "" {
		req.Header.Set(searchAfterHeader, params.SearchAfter)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "CMR API request failed",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("CMR API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "CMR API returned non-200 status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(body)),
		)
		return nil, fmt.Errorf("CMR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var feed SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode CMR response",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to decode CMR response: %w", err)
	}

	hits, _ := strconv.Atoi(resp.Header.Get(hitsHeader))
	searchAfter := resp.Header.Get(searchAfterHeader)

	c.logger.DebugContext(ctx, "CMR search page completed",
		slog.Int("hits", hits),
		slog.Int("returned", len(feed.Feed.Entry)),
		slog.Bool("has_next", searchAfter != ""),
	)

	return &SearchResult{
		Entries:     feed.Feed.Entry,
		Hits:        hits,
		SearchAfter: searchAfter,
	}, nil
}

// SearchAll pages through a granule search with the CMR-Search-After cursor
// and returns every matching entry.
func (c *Client) SearchAll(ctx context.Context, params *SearchParams) ([]Entry, error) {
	p := *params
	var entries []Entry
	for {
		result, err := c.Search(ctx, &p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, result.Entries...)
		if result.SearchAfter == "" || len(result.Entries) == 0 {
			break
		}
		p.SearchAfter = result.SearchAfter
	}
	return entries, nil
}
