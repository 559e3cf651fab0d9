package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/snoozelab/holiday-alarm/internal/domain"
	"github.com/snoozelab/holiday-alarm/internal/logger"
)

const (
	// DefaultTimeout bounds one fetch; expiry is treated as a plain
	// fetch failure by the caller.
	DefaultTimeout = 10 * time.Second

	// pageSize is comfortably above the number of holiday entries any
	// single year produces.
	pageSize = 100
)

// Client fetches public holidays for a calendar year from the
// government special-day API. The source is treated as unreliable:
// every error is returned to the caller, nothing is retried here.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a holiday API client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseURL, serviceKey string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// FetchHolidays returns the raw holiday entries for a year, including
// the source's non-holiday commemorative days. Filtering on the
// isHoliday flag is the cache's job at ingestion.
func (c *Client) FetchHolidays(ctx context.Context, year int) ([]domain.Holiday, error) {
	endpoint, err := c.buildURL(year)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d for year %d", resp.StatusCode, year)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	header := parsed.Response.Header
	if header.ResultCode != resultCodeOK {
		return nil, fmt.Errorf("holiday API error for year %d: %s (%s)",
			year, header.ResultMsg, header.ResultCode)
	}

	items := parsed.Response.Body.Items.Items
	c.logger.Debug("fetched holidays",
		logger.Int("year", year),
		logger.Int("entries", len(items)),
		logger.Duration("elapsed", time.Since(start)))

	return items, nil
}

// buildURL assembles the getHoliDeInfo query for a year.
func (c *Client) buildURL(year int) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse holiday API base URL: %w", err)
	}
	base.Path, err = url.JoinPath(base.Path, "getHoliDeInfo")
	if err != nil {
		return "", fmt.Errorf("failed to build holiday API path: %w", err)
	}

	query := url.Values{}
	query.Set("serviceKey", c.serviceKey)
	query.Set("solYear", strconv.Itoa(year))
	query.Set("_type", "json")
	query.Set("numOfRows", strconv.Itoa(pageSize))
	base.RawQuery = query.Encode()

	return base.String(), nil
}
