// Package ecfr is the HTTP client for the remote eCFR registry. Pure
// transport: it fetches and decodes, with no business logic and no
// retries.
package ecfr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/cfrsync/internal/ports/secondary"
)

const (
	agenciesPath    = "/api/admin/v1/agencies.json"
	titlesPath      = "/api/versioner/v1/titles.json"
	correctionsPath = "/api/admin/v1/corrections.json"
)

// Client implements secondary.ECFRSource over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAgencies retrieves the agency tree.
func (c *Client) FetchAgencies(ctx context.Context) (*secondary.AgenciesPayload, error) {
	var payload secondary.AgenciesPayload
	if err := c.get(ctx, agenciesPath, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch agencies: %w", err)
	}
	return &payload, nil
}

// FetchTitles retrieves the title list.
func (c *Client) FetchTitles(ctx context.Context) (*secondary.TitlesPayload, error) {
	var payload secondary.TitlesPayload
	if err := c.get(ctx, titlesPath, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch titles: %w", err)
	}
	return &payload, nil
}

// FetchCorrections retrieves the corrections collection.
func (c *Client) FetchCorrections(ctx context.Context) (*secondary.CorrectionsPayload, error) {
	var payload secondary.CorrectionsPayload
	if err := c.get(ctx, correctionsPath, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch corrections: %w", err)
	}
	return &payload, nil
}

// get performs one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Ensure Client implements the interface.
var _ secondary.ECFRSource = (*Client)(nil)
