package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const productPath = "/product"

// ClientOptions parameterise the catalog API client.
type ClientOptions struct {
	BaseURL   string
	AccessKey string
	// Domain selects the marketplace (1 = amazon.com).
	Domain    int
	Timeout   time.Duration
	UserAgent string
}

// Client fetches product histories over HTTP.
type Client struct {
	opts    ClientOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewClient constructs a catalog API client.
func NewClient(opts ClientOptions, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.keepa.com"
	}

	if opts.Domain <= 0 {
		opts.Domain = 1
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "catalog_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchProduct retrieves the history payload for one ASIN.
func (c *Client) FetchProduct(ctx context.Context, asin string) (*ProductPayload, error) {
	asin = strings.TrimSpace(asin)
	if asin == "" {
		return nil, errors.New("asin required")
	}
	if c.opts.AccessKey == "" {
		return nil, errors.New("catalog api access key not configured")
	}

	params := url.Values{}
	params.Set("key", c.opts.AccessKey)
	params.Set("domain", strconv.Itoa(c.opts.Domain))
	params.Set("asin", asin)

	endpoint := c.baseURL + productPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "asinwatch/1.0")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp.StatusCode, payloadBytes)
	}

	var res productResponse
	if err := json.Unmarshal(payloadBytes, &res); err != nil {
		return nil, fmt.Errorf("parse product response: %w", err)
	}

	if len(res.Products) == 0 {
		return nil, fmt.Errorf("no product returned for asin %s", asin)
	}

	product := res.Products[0]
	c.logger.Debug().
		Str("asin", product.ASIN).
		Int("series", len(product.CSV)).
		Int64("tokens_left", res.TokensLeft).
		Msg("product payload fetched")

	return &product, nil
}

type productResponse struct {
	Products   []ProductPayload `json:"products"`
	TokensLeft int64            `json:"tokensLeft"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Error.Message != "" {
			return fmt.Errorf("catalog api error (%d): %s", status, apiErr.Error.Message)
		}
		if apiErr.Error.Type != "" {
			return fmt.Errorf("catalog api error (%d): %s", status, apiErr.Error.Type)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("catalog api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("catalog api error (%d)", status)
}

var _ ProductFetcher = (*Client)(nil)
