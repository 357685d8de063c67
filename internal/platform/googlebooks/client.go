// Package googlebooks is a minimal client for the Google Books volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// MaxPageSize is the largest maxResults the volumes endpoint accepts.
const MaxPageSize = 40

const defaultBaseURL = "https://www.googleapis.com"

type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	apiKey     string
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  opts.UserAgent,
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
	}
}

// SearchVolumes requests one page of results for q. A response without an
// items array is an empty page, not an error.
func (c *Client) SearchVolumes(ctx context.Context, q string, startIndex, maxResults int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u := fmt.Sprintf("%s/books/v1/volumes?%s", c.baseURL, params.Encode())

	var res VolumesResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode volumes response: %w", err)
	}
	return nil
}
