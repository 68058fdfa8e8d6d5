// Package fipeclient is a thin client for the FIPE vehicle price reference
// API. Calls are bounded by a per-request timeout and a fixed number of
// retries with exponential backoff.
package fipeclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/velostock/velostock/foundation/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Set of client errors callers can test for.
var (
	ErrNotFound      = errors.New("reference price not found")
	ErrQuotaExceeded = errors.New("price api quota exceeded")
)

// Price is the reference price returned for a brand/model/year/version.
type Price struct {
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	Version        string  `json:"version"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	ReferenceMonth string  `json:"reference_month"`
	FipeCode       string  `json:"fipe_code"`
}

// Client manages calls against the price API.
type Client struct {
	log        *logger.Logger
	host       string
	http       *http.Client
	maxRetries uint64
}

// New constructs a client against the specified host.
func New(log *logger.Logger, host string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{
		log:  log,
		host: host,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		maxRetries: maxRetries,
	}
}

// Query fetches the reference price for the specified vehicle. Server errors
// are retried, client errors are not. A 429 surfaces as ErrQuotaExceeded.
func (c *Client) Query(ctx context.Context, brand string, model string, year int, version string) (Price, error) {
	q := url.Values{}
	q.Set("brand", brand)
	q.Set("model", model)
	q.Set("year", strconv.Itoa(year))
	if version != "" {
		q.Set("version", version)
	}

	endpoint := fmt.Sprintf("%s/v1/price?%s", c.host, q.Encode())

	var price Price

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("new request: %w", err))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("do: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
				return backoff.Permanent(fmt.Errorf("decode: %w", err))
			}
			return nil

		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)

		case resp.StatusCode == http.StatusTooManyRequests:
			return backoff.Permanent(ErrQuotaExceeded)

		case resp.StatusCode >= 500:
			return fmt.Errorf("status %d", resp.StatusCode)

		default:
			return backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	if err := backoff.Retry(op, bo); err != nil {
		return Price{}, fmt.Errorf("fipe query: %w", err)
	}

	return price, nil
}
