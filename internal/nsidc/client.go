// Package nsidc provides a client for the NSIDC EGI subsetting service, which
// subsets, reformats and packages granules server-side and returns each order
// page as a zip archive.
package nsidc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nsidc-tools/nsidc-subset/internal/cmr"
)

const (
	// DefaultBaseURL is the NSIDC EGI host used for subsetting orders.
	DefaultBaseURL = "https://n5eil02u.ecs.nsidc.org"

	// DefaultPageSize is the number of granules bundled per order page.
	DefaultPageSize = 100
)

// Client handles communication with the NSIDC EGI API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new EGI client. The httpClient must carry Earthdata
// authentication; EGI refuses anonymous orders.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     slog.Default(),
	}
}

// WithLogger sets a custom logger for the client.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// OrderParams represents one page of an EGI subsetting order.
type OrderParams struct {
	ShortName string
	Version   string // Expanded to zero-padded variants like the CMR query

	// Granule filter, mirroring the CMR search that selected the order
	BoundingBox string // bounding_box: lonmin,latmin,lonmax,latmax
	Temporal    string // time: start,end

	// Subsetting region: at most one of BBox or Polygon
	BBox    string // bbox: lonmin,latmin,lonmax,latmax
	Polygon string // polygon: lon1,lat1,lon2,lat2,...

	Format string // Output conversion, e.g. "NetCDF4" or "TABULAR_ASCII"

	PageSize int
	PageNum  int
}

// ToURLValues converts OrderParams to URL query parameters.
func (p *OrderParams) ToURLValues() url.Values {
	values := url.Values{}

	values.Set("short_name", p.ShortName)
	// EGI accepts the same zero-padded version variants as CMR.
	for _, v := range cmr.VersionVariants(p.Version) {
		values.Add("version", v)
	}

	if p.BoundingBox != "" {
		values.Set("bounding_box", p.BoundingBox)
	}
	if p.Temporal != "" {
		values.Set("time", p.Temporal)
	}
	if p.BBox != "" {
		values.Set("bbox", p.BBox)
	}
	if p.Polygon != "" {
		values.Set("polygon", p.Polygon)
	}
	if p.Format != "" {
		values.Set("format", p.Format)
	}

	if p.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(p.PageSize))
	} else {
		values.Set("page_size", strconv.Itoa(DefaultPageSize))
	}
	if p.PageNum > 0 {
		values.Set("page_num", strconv.Itoa(p.PageNum))
	}

	// Synchronous delivery: the response body is the order zip.
	values.Set("request_mode", "stream")

	return values
}

// FetchPage requests one order page and returns its body, a zip archive. The
// caller owns the returned reader.
func (c *Client) FetchPage(ctx context.Context, params *OrderParams) (io.ReadCloser, error) {
	orderURL := c.baseURL + "/egi/request?" + params.ToURLValues().Encode()

	c.logger.DebugContext(ctx, "requesting EGI order page",
		slog.String("url", orderURL),
		slog.Int("page", params.PageNum),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, orderURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "nsidc-subset/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "EGI request failed",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("EGI request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.logger.ErrorContext(ctx, "EGI returned non-200 status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(body)),
		)
		return nil, fmt.Errorf("EGI returned status %d: %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}
