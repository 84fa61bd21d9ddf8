// Package partnerhttp carries partner wire requests over HTTP. It owns the
// transport concerns the adapter layer stays out of: per-partner base URLs,
// rate limiting, bounded retries with backoff.
package partnerhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"notesapi/internal/partner"
)

// Endpoint is one partner's HTTP location.
type Endpoint struct {
	BaseURL string
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	endpoints  map[string]Endpoint
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(userAgent string, endpoints map[string]Endpoint, rps int, maxRetries int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:  userAgent,
		endpoints:  endpoints,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

// Invoke posts the partner wire request to {base}/{resource} and decodes the
// JSON body as the partner wire response. 429 and 5xx responses are retried
// with exponential backoff up to maxRetries; other failures return
// immediately.
func (c *Client) Invoke(ctx context.Context, partnerCode, resource string, req partner.Request) (partner.Response, error) {
	endpoint, ok := c.endpoints[partnerCode]
	if !ok {
		return nil, fmt.Errorf("no endpoint configured for partner %q", partnerCode)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := endpoint.BaseURL + "/" + resource

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var out partner.Response
		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode partner response: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}
