// Package purpleair is a client for the PurpleAir sensor history API.
//
// The API caps how much history one request may return, so a date
// range is fetched as a sequence of fixed-size pages with a fixed
// delay between requests. Transient failures are retried a bounded
// number of times; the page results are concatenated into a single
// raw feed envelope.
package purpleair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/stratus/pkg/logger"
	"github.com/okian/stratus/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://api.purpleair.com"
	// Query in 4-week pages, the largest span the history endpoint
	// serves at 6-hour averages.
	defaultPageSpan = 4 * 7 * 24 * time.Hour
	// Ask for 6-hour averaged samples (minutes, per the API).
	defaultAverageMinutes = 360
	defaultRequestDelay   = 5 * time.Second
	defaultMaxRetries     = 3
	defaultTimeout        = 30 * time.Second
)

// historyFields is the fixed set of columns requested per sample.
const historyFields = "humidity,temperature,pressure"

// History is the concatenated result of a paged history fetch. Its
// JSON form matches the feed envelope the pipeline ingests.
type History struct {
	StartTimestamp int64       `json:"start_timestamp"`
	EndTimestamp   int64       `json:"end_timestamp"`
	Fields         []string    `json:"fields"`
	Data           [][]float64 `json:"data"`
}

// Client fetches sensor history from the PurpleAir API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	pageSpan       time.Duration
	averageMinutes int
	requestDelay   time.Duration
	maxRetries     int

	logger logger.Logger
}

// NewClient creates a history client authenticated with the given
// API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:        defaultBaseURL,
		apiKey:         apiKey,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		pageSpan:       defaultPageSpan,
		averageMinutes: defaultAverageMinutes,
		requestDelay:   defaultRequestDelay,
		maxRetries:     defaultMaxRetries,
		logger:         logger.Get().Named("purpleair"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CheckKey verifies the configured API key against the keys endpoint.
func (c *Client) CheckKey(ctx context.Context) error {
	if _, err := c.get(ctx, c.baseURL+"/v1/keys"); err != nil {
		return fmt.Errorf("check api key: %w", err)
	}
	return nil
}

// History fetches sensor history for the station over [start, end),
// page by page, and concatenates the page data arrays into a single
// envelope. A page that keeps failing after the retry budget aborts
// the fetch; pages already collected are not returned partially.
func (c *Client) History(ctx context.Context, station int, start, end time.Time) (*History, error) {
	var combined *History

	for cursor := start; cursor.Before(end); cursor = cursor.Add(c.pageSpan) {
		pageEnd := cursor.Add(c.pageSpan)
		if pageEnd.After(end) {
			pageEnd = end
		}

		c.logger.Info(ctx, "querying station history",
			logger.Int("station", station),
			logger.Time("from", cursor),
			logger.Time("to", pageEnd),
		)

		page, err := c.historyPage(ctx, station, cursor, pageEnd)
		if err != nil {
			return nil, fmt.Errorf("fetch page %s..%s: %w",
				cursor.Format(time.RFC3339), pageEnd.Format(time.RFC3339), err)
		}
		metrics.RecordScrapePage()

		if combined == nil {
			combined = page
		} else {
			combined.EndTimestamp = page.EndTimestamp
			combined.Data = append(combined.Data, page.Data...)
		}

		// Fixed delay between page requests to stay under the API's
		// rate limit.
		if cursor.Add(c.pageSpan).Before(end) {
			if err := sleepCtx(ctx, c.requestDelay); err != nil {
				return nil, err
			}
		}
	}

	if combined == nil {
		combined = &History{
			StartTimestamp: start.Unix(),
			EndTimestamp:   end.Unix(),
			Fields:         []string{"humidity", "temperature", "pressure"},
		}
	}

	return combined, nil
}

// historyPage fetches one page, retrying transient failures with a
// fixed delay.
func (c *Client) historyPage(ctx context.Context, station int, start, end time.Time) (*History, error) {
	u := fmt.Sprintf("%s/v1/sensors/%d/history?%s", c.baseURL, station, url.Values{
		"start_timestamp": {strconv.FormatInt(start.Unix(), 10)},
		"end_timestamp":   {strconv.FormatInt(end.Unix(), 10)},
		"fields":          {historyFields},
		"average":         {strconv.Itoa(c.averageMinutes)},
	}.Encode())

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordScrapeRetry()
			c.logger.Warn(ctx, "retrying history page",
				logger.Int("attempt", attempt),
				logger.Error(lastErr),
			)
			if err := sleepCtx(ctx, c.requestDelay); err != nil {
				return nil, err
			}
		}

		body, err := c.get(ctx, u)
		if err != nil {
			lastErr = err
			if !isTransient(err) {
				return nil, err
			}
			continue
		}

		var page History
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode history page: %w", err)
		}
		return &page, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordScrapeRequest("error")
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordScrapeRequest("error")
		return nil, &transientError{err: err}
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		metrics.RecordScrapeRequest("error")
		return nil, &transientError{err: fmt.Errorf("%w: %s", ErrAPIStatus, resp.Status)}
	case resp.StatusCode >= http.StatusBadRequest:
		metrics.RecordScrapeRequest("error")
		return nil, fmt.Errorf("%w: %s", ErrAPIStatus, resp.Status)
	}

	metrics.RecordScrapeRequest("ok")
	return body, nil
}

// transientError marks failures worth retrying: network errors and
// server-side (5xx) statuses.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("scrape interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
