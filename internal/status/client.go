package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the public status endpoint for Escape from Tarkov.
const DefaultURL = "https://status.escapefromtarkov.com/api/message/list"

// Client fetches event snapshots from the status API.
type Client struct {
	url    string
	client *http.Client
}

// NewClient builds a Client for the given list endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{url: url, client: &http.Client{Timeout: timeout, Transport: tr}}
}

// Fetch retrieves the current snapshot of events. Transport failures, non-2xx
// responses, and malformed payloads are all returned as errors; the caller
// decides what a failed poll means for tracked state.
func (c *Client) Fetch(ctx context.Context) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("status api http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return events, nil
}
