// Package remote fetches holiday and school vacation records from an
// OpenHolidays-style web service and normalizes them for comparison.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

const (
	DefaultBaseURL    = "https://openholidaysapi.org"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2

	// maxResponseSize bounds a single response body.
	maxResponseSize = 2 * 1024 * 1024

	userAgent = "ferien-checker/1.0"
)

// retryBaseDelay is the base delay between retry attempts (variable for testing).
var retryBaseDelay = 500 * time.Millisecond

// errRetryable marks a failure worth another attempt.
var errRetryable = errors.New("retryable")

// Client talks to the remote holiday service. Every request is a blocking
// call bounded by the HTTP client timeout.
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	MaxRetries int
}

// NewClient creates a client with the given per-request timeout and retry budget.
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTP:       &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
	}
}

// SchoolHolidays returns the school vacation records of a country or subdivision
// valid between from and to.
func (c *Client) SchoolHolidays(ctx context.Context, sr ServiceRegion, from, to calendar.Date) ([]Record, error) {
	return c.get(ctx, "/SchoolHolidays", rangeParams(sr, from, to))
}

// PublicHolidays returns the public holiday records valid between from and to.
func (c *Client) PublicHolidays(ctx context.Context, sr ServiceRegion, from, to calendar.Date) ([]Record, error) {
	return c.get(ctx, "/PublicHolidays", rangeParams(sr, from, to))
}

// PublicHolidaysByDate returns the public holidays of all countries on one date.
func (c *Client) PublicHolidaysByDate(ctx context.Context, d calendar.Date, language string) ([]Record, error) {
	params := url.Values{}
	params.Set("date", d.ISO())
	params.Set("languageIsoCode", language)
	return c.get(ctx, "/PublicHolidaysByDate", params)
}

func rangeParams(sr ServiceRegion, from, to calendar.Date) url.Values {
	params := url.Values{}
	params.Set("countryIsoCode", sr.Country)
	if sr.Subdivision != "" {
		params.Set("subdivisionCode", sr.Subdivision)
	}
	if sr.Language != "" {
		params.Set("languageIsoCode", sr.Language)
	}
	params.Set("validFrom", from.ISO())
	params.Set("validTo", to.ISO())
	return params
}

// get fetches and decodes a record list, retrying transport failures and
// 429/5xx answers with exponential backoff. Any final failure is reported as
// a DataSourceUnavailableError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]Record, error) {
	target := c.BaseURL + endpoint + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			logging.Debug("retrying %s in %v (attempt %d/%d)", endpoint, delay, attempt+1, c.MaxRetries+1)
			select {
			case <-ctx.Done():
				return nil, c.unavailable(ctx.Err())
			case <-time.After(delay):
			}
		}

		records, err := c.fetch(ctx, target)
		if err == nil {
			return records, nil
		}
		lastErr = err
		if !errors.Is(err, errRetryable) || ctx.Err() != nil {
			break
		}
		logging.Warn("fetch %s failed: %v", endpoint, err)
	}
	return nil, c.unavailable(lastErr)
}

func (c *Client) fetch(ctx context.Context, target string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %w", target, err, errRetryable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, fmt.Errorf("GET %s: status %d: %w", target, resp.StatusCode, errRetryable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("GET %s: decode: %w", target, err)
	}
	return decodeRecords(raw), nil
}

// decodeRecords unmarshals each element on its own. Elements with mistyped
// fields are skipped so the remaining records still count.
func decodeRecords(raw []json.RawMessage) []Record {
	records := make([]Record, 0, len(raw))
	for i, msg := range raw {
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			logging.Warn("skipping undecodable record %d: %v", i, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (c *Client) unavailable(err error) error {
	return &compare.DataSourceUnavailableError{Source: c.BaseURL, Err: err}
}
