// Package gsearch is a Google Custom Search JSON API client. It is the one
// network-bound collaborator a conversation turn may touch, so every call
// carries an explicit timeout and a bounded retry with exponential backoff;
// a turn can fail, never hang.
package gsearch

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

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const (
	maxResponseSizeBytes = 2 << 20
	noResultsText        = "No good search result was found"
)

type Config struct {
	BaseURL    string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.googleapis.com/customsearch/v1"`
	APIKey     string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	EngineID   string        `envconfig:"ENGINE_ID" split_words:"true" required:"true"`
	Results    int           `envconfig:"RESULTS" split_words:"true" default:"1"`
	Timeout    time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
	MaxRetries uint64        `envconfig:"MAX_RETRIES" split_words:"true" default:"2"`
}

type Client struct {
	baseURL    string
	apiKey     string
	engineID   string
	results    int
	maxRetries uint64
	httpClient *http.Client
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("search base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid search base url: %w", err)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("search api key is required")
	}
	if strings.TrimSpace(cfg.EngineID) == "" {
		return nil, errors.New("search engine id is required")
	}

	results := cfg.Results
	if results <= 0 {
		results = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		engineID:   strings.TrimSpace(cfg.EngineID),
		results:    results,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Search runs one query and returns the result snippets as plain text.
// Transient failures are retried up to the configured cap; client errors
// from the API are not retried.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("search query is empty")
	}

	var text string
	operation := func() error {
		var err error
		text, err = c.searchOnce(ctx, query)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("search failed")
		return "", err
	}
	return text, nil
}

func (c *Client) searchOnce(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(c.results))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("build search request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return "", fmt.Errorf("read search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("search http status=%d message=%s", resp.StatusCode, parsed.Error.Message)
		if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	if len(parsed.Items) == 0 {
		return noResultsText, nil
	}

	snippets := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		snippets = append(snippets, item.Snippet)
	}
	return strings.Join(snippets, " "), nil
}
