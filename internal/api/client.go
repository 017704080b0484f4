package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fetches last-known device telemetry from the analytics API.
type Client struct {
	url       string
	secretKey string
	client    *http.Client
}

// NewClient returns a fetcher for the given endpoint. The timeout bounds the
// whole request; an expired request surfaces as an error to the caller.
func NewClient(url, secretKey string, timeout time.Duration) *Client {
	return &Client{
		url:       url,
		secretKey: secretKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type fetchRequest struct {
	SecretKey string `json:"secretkey"`
	IMEINo    string `json:"imeino"`
	PageIndex string `json:"pageindex"`
}

type fetchResponse struct {
	Data []map[string]any `json:"data"`
}

// FetchDevices requests the latest snapshot of every device and returns the
// raw per-device records. Transport failures, non-2xx statuses and malformed
// bodies are returned as errors; no retry happens here.
func (c *Client) FetchDevices(ctx context.Context) ([]map[string]any, error) {
	body, err := json.Marshal(fetchRequest{
		SecretKey: c.secretKey,
		IMEINo:    "all",
		PageIndex: "1",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("api: unexpected status %d", resp.StatusCode)
	}

	var parsed fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	return parsed.Data, nil
}
