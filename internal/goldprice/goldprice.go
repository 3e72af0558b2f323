// Package goldprice fetches the 24k gold price per gram from goldapi.io.
//
// Fetch never fails: any problem yields a fallback Quote whose Err says why,
// so callers can tell a live price from the substitute.
package goldprice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultURL     = "https://www.goldapi.io/api/XAU/USD"
	DefaultTimeout = 3 * time.Second

	FallbackPricePerGram = 75.0

	priceField = "price_gram_24k"
)

var (
	ErrNoAPIKey     = errors.New("gold api key not configured")
	ErrRequest      = errors.New("gold api request failed")
	ErrTimeout      = errors.New("gold api request timed out")
	ErrStatus       = errors.New("gold api returned non-2xx status")
	ErrDecode       = errors.New("gold api response is not valid json")
	ErrMissingField = errors.New("gold api response has no " + priceField)
	ErrNotNumeric   = errors.New("gold api " + priceField + " is not numeric")
)

type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type Quote struct {
	PricePerGram float64
	Source       Source
	// Err is set only for fallback quotes.
	Err error
}

func (q Quote) Fallback() bool {
	return q.Source == SourceFallback
}

func live(price float64) Quote {
	return Quote{PricePerGram: price, Source: SourceLive}
}

func fallback(err error) Quote {
	return Quote{PricePerGram: FallbackPricePerGram, Source: SourceFallback, Err: err}
}

type Client struct {
	url        string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(url, apiKey string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Fetch asks the gold API for the current price. It is bounded by the client
// timeout as well as ctx.
func (c *Client) Fetch(ctx context.Context) Quote {
	if c.apiKey == "" {
		return fallback(ErrNoAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fallback(fmt.Errorf("%w: %v", ErrRequest, err))
	}
	req.Header.Set("x-access-token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fallback(fmt.Errorf("%w after %s", ErrTimeout, c.timeout))
		}
		return fallback(fmt.Errorf("%w: %v", ErrRequest, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fallback(fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode))
	}

	var body map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fallback(fmt.Errorf("%w after %s", ErrTimeout, c.timeout))
		}
		return fallback(fmt.Errorf("%w: %v", ErrDecode, err))
	}

	price, err := parsePrice(body)
	if err != nil {
		return fallback(err)
	}
	return live(price)
}

// parsePrice accepts the field as a JSON number or a numeric string.
func parsePrice(body map[string]any) (float64, error) {
	raw, ok := body[priceField]
	if !ok || raw == nil {
		return 0, ErrMissingField
	}

	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = v
	default:
		return 0, fmt.Errorf("%w: %v", ErrNotNumeric, raw)
	}

	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, text)
	}
	return price, nil
}
