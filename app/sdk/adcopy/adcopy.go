// Package adcopy is a thin client for the LLM completion API used to write
// sales copy for a vehicle listing. Same resilience posture as the price
// client: request timeout, bounded retries, 429 means the account quota ran
// out and is surfaced as its own error.
package adcopy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/velostock/velostock/foundation/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrQuotaExceeded is returned when the completion API rejects the request
// for billing/rate reasons.
var ErrQuotaExceeded = errors.New("ad copy api quota exceeded")

// Request carries the vehicle facts the copy should mention.
type Request struct {
	Brand    string
	Model    string
	Year     int
	Color    string
	Odometer int
	Fuel     string
	Price    float64
	Tone     string
}

// Copy is the generated listing text.
type Copy struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Client manages calls against the completion API.
type Client struct {
	log        *logger.Logger
	host       string
	apiKey     string
	model      string
	http       *http.Client
	maxRetries uint64
}

// New constructs a client against the specified host.
func New(log *logger.Logger, host string, apiKey string, model string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{
		log:    log,
		host:   host,
		apiKey: apiKey,
		model:  model,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		maxRetries: maxRetries,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate asks the completion API for listing copy for the vehicle.
func (c *Client) Generate(ctx context.Context, adReq Request) (Copy, error) {
	prompt := fmt.Sprintf(
		"Escreva um anúncio de venda curto e atraente para um %s %s %d, cor %s, %d km, combustível %s, por R$ %.2f. Tom: %s. Responda em JSON com os campos title e body.",
		adReq.Brand, adReq.Model, adReq.Year, adReq.Color, adReq.Odometer, adReq.Fuel, adReq.Price, adReq.Tone)

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return Copy{}, fmt.Errorf("marshal: %w", err)
	}

	var content string

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("new request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("do: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var cr chatResponse
			if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
				return backoff.Permanent(fmt.Errorf("decode: %w", err))
			}
			if len(cr.Choices) == 0 {
				return backoff.Permanent(errors.New("no choices returned"))
			}
			content = cr.Choices[0].Message.Content
			return nil

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
		return Copy{}, fmt.Errorf("adcopy generate: %w", err)
	}

	var cp Copy
	if err := json.Unmarshal([]byte(content), &cp); err != nil {
		// The model did not honor the JSON instruction, use the raw text.
		cp = Copy{Body: content}
	}

	return cp, nil
}
