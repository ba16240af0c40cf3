// Package catalog implements a read-only client for the public country
// catalog service. The client keeps no state and performs no retries,
// caching, or authentication.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atinyakov/countrybook/internal/models"
)

// ErrNotFound indicates the service answered 404: no records match the
// query. Callers use it to render an empty result instead of a failure.
var ErrNotFound = errors.New("catalog: no matching countries")

// Client issues GET requests against the country catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	// BaseURL is the root of the catalog service, e.g.
	// "https://restcountries.com/v3.1".
	BaseURL string
	// Timeout bounds each request. Defaults to 15 seconds.
	Timeout time.Duration
}

// New creates a catalog client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// All returns the full catalog.
func (c *Client) All(ctx context.Context) ([]models.Country, error) {
	return c.get(ctx, "/all")
}

// ByName returns the countries whose common name matches the given
// case-insensitive substring. A term matching nothing yields ErrNotFound.
func (c *Client) ByName(ctx context.Context, name string) ([]models.Country, error) {
	return c.get(ctx, "/name/"+url.PathEscape(name))
}

// ByRegion returns the countries of the given region.
func (c *Client) ByRegion(ctx context.Context, region string) ([]models.Country, error) {
	return c.get(ctx, "/region/"+url.PathEscape(region))
}

// ByCode returns the country with the given alpha-3 code. The service
// answers with a single-element sequence.
func (c *Client) ByCode(ctx context.Context, code string) (*models.Country, error) {
	countries, err := c.get(ctx, "/alpha/"+url.PathEscape(code))
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, ErrNotFound
	}
	return &countries[0], nil
}

// get performs one request and decodes the response body. A 404 becomes
// ErrNotFound; any other non-2xx status or transport failure is returned as
// a wrapped error distinguishable from ErrNotFound.
func (c *Client) get(ctx context.Context, path string) ([]models.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var countries []models.Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return countries, nil
}
