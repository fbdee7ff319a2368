// Package addressval wraps the external address-validation API. Its
// verdict is advisory: callers surface the normalized address to the
// user but never block a wizard submission on a mismatch.
package addressval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidKey is returned when the API rejects the configured key.
var ErrInvalidKey = errors.New("address validation: invalid API key")

// RateLimitError is returned when the server responds with HTTP 429.
type RateLimitError struct {
	Message string
}

func (r *RateLimitError) Error() string {
	return fmt.Sprintf("address validation rate limit exceeded: %s", r.Message)
}

// Address is the wizard-side address shape submitted for validation.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// singleLine flattens the address the way the comparison normalizes it.
func (a Address) singleLine() string {
	parts := []string{a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Result carries both forms of the address plus whether they normalize
// to the same string.
type Result struct {
	UserAddress       string `json:"user_address"`
	NormalizedAddress string `json:"normalized_address"`
	AreIdentical      bool   `json:"are_identical"`
}

// Client talks to the validation API. A zero-key client is a no-op
// validator that echoes the input, which is how dev environments run.
type Client struct {
	BaseURL    *url.URL
	APIKey     string
	HTTPClient *http.Client
	MaxRetries int
	RetryInit  time.Duration
}

const defaultBaseURL = "https://addressvalidation.googleapis.com/v1:validateAddress"

// NewClient builds a client. Empty baseURL falls back to the default
// endpoint; maxRetries only applies to 429 responses.
func NewClient(apiKey, baseURL string, maxRetries int, retryInit time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryInit <= 0 {
		retryInit = time.Second
	}
	return &Client{
		BaseURL:    parsed,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxRetries: maxRetries,
		RetryInit:  retryInit,
	}, nil
}

type validateRequest struct {
	Address Address `json:"address"`
}

type validateResponse struct {
	FormattedAddress string `json:"formatted_address"`
}

// Validate submits the address and returns both forms plus the identity
// comparison. Network errors pass through untouched so callers can
// distinguish them from API-level failures.
func (c *Client) Validate(ctx context.Context, addr Address) (*Result, error) {
	userLine := addr.singleLine()

	if c.APIKey == "" {
		return &Result{UserAddress: userLine, NormalizedAddress: userLine, AreIdentical: true}, nil
	}

	body, err := json.Marshal(validateRequest{Address: addr})
	if err != nil {
		return nil, err
	}

	backoff := c.RetryInit
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL.String(), bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", c.APIKey)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			defer resp.Body.Close()
			var out validateResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return nil, err
			}
			return &Result{
				UserAddress:       userLine,
				NormalizedAddress: out.FormattedAddress,
				AreIdentical:      normalize(userLine) == normalize(out.FormattedAddress),
			}, nil

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return nil, ErrInvalidKey

		case resp.StatusCode == http.StatusTooManyRequests:
			msg := readBody(resp)
			if attempt < c.MaxRetries {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, &RateLimitError{Message: msg}

		default:
			msg := readBody(resp)
			return nil, fmt.Errorf("address validation failed: %d %s", resp.StatusCode, msg)
		}
	}
}

func readBody(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return strings.TrimSpace(string(b))
}

var punct = strings.NewReplacer(",", "", ".", "", "#", "")

// normalize strips punctuation, collapses whitespace, and lowercases so
// cosmetic differences do not flag a mismatch.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(punct.Replace(s))), " ")
}
