package ratesprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"
)

// RetryPolicy bounds the outbound call: up to MaxRetries retries after the
// first attempt, a fixed delay between attempts, and a per-attempt timeout
// that grows linearly with the zero-based attempt index.
type RetryPolicy struct {
	MaxRetries  int
	Delay       time.Duration
	TimeoutBase time.Duration
	TimeoutStep time.Duration
}

// AttemptTimeout returns the timeout for attempt n (zero-based).
func (p RetryPolicy) AttemptTimeout(n int) time.Duration {
	return p.TimeoutBase + time.Duration(n)*p.TimeoutStep
}

// Client performs the outbound rates call with bounded retries. The zero
// http.Client is safe for concurrent use, so one Client serves all requests.
type Client struct {
	RatesAPIURL string
	Policy      RetryPolicy
	HTTPClient  *http.Client
}

func NewClient(ratesAPIURL string, policy RetryPolicy) *Client {
	return &Client{
		RatesAPIURL: ratesAPIURL,
		Policy:      policy,
		HTTPClient:  &http.Client{},
	}
}

// Send posts the payload to the provider and returns the raw response body.
// A non-2xx status and an unparsable body are retried exactly like a
// transport error; the first 2xx attempt with valid JSON wins. The returned
// error is terminal and carries a human readable cause.
func (c *Client) Send(ctx context.Context, payload Payload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode rates payload: %w", err)
	}

	var (
		result   []byte
		attempts int
	)

	backoff := retry.WithMaxRetries(uint64(c.Policy.MaxRetries), retry.NewConstant(c.Policy.Delay))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		n := attempts
		attempts++

		raw, attemptErr := c.attempt(ctx, n, body)
		if attemptErr != nil {
			slog.WarnContext(ctx, "rates provider attempt failed",
				slog.Int64("unit_type_id", payload.UnitTypeID),
				slog.Int("attempt", n+1),
				slog.String("error", attemptErr.Error()))

			return retry.RetryableError(attemptErr)
		}

		result = raw

		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = fmt.Errorf("connection error or timeout: %w", err)
		}

		return nil, fmt.Errorf("rates request failed after %d attempts: %w", attempts, err)
	}

	return result, nil
}

func (c *Client) attempt(ctx context.Context, n int, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Policy.AttemptTimeout(n))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.RatesAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error or timeout: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, fmt.Errorf("provider returned HTTP status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("connection error or timeout: %w", err)
	}

	if !gjson.ValidBytes(raw) {
		return nil, errors.New("provider returned an unparsable body")
	}

	return raw, nil
}
