// Package client provides an HTTP client for the listing site's API.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/satish051/RealEstateApp/internal/property"
)

// Client talks to a running listing server over its JSON API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the given server URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOptions filters the property list. Nil price bounds mean
// unconstrained; prices are in whole dollars.
type ListOptions struct {
	Search      string
	MinPrice    *int64
	MaxPrice    *int64
	ListingType string
}

// SimilarOptions tunes the similar listings returned with a property.
type SimilarOptions struct {
	Max     int
	Band    float64
	Seed    *int64
	ByPrice bool
}

type listResponse struct {
	Properties []*property.Property `json:"properties"`
	Count      int                  `json:"count"`
}

type propertyResponse struct {
	Property *property.Property   `json:"property"`
	Similar  []*property.Property `json:"similar"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ListProperties fetches properties matching the given filter.
func (c *Client) ListProperties(opts ListOptions) ([]*property.Property, error) {
	params := url.Values{}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.MinPrice != nil {
		params.Set("min_price", strconv.FormatInt(*opts.MinPrice, 10))
	}
	if opts.MaxPrice != nil {
		params.Set("max_price", strconv.FormatInt(*opts.MaxPrice, 10))
	}
	if opts.ListingType != "" {
		params.Set("type", opts.ListingType)
	}

	endpoint := c.baseURL + "/api/properties"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp listResponse
	if err := c.get(endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Properties, nil
}

// GetProperty fetches a single property and its similar listings.
func (c *Client) GetProperty(id int64, opts SimilarOptions) (*property.Property, []*property.Property, error) {
	params := url.Values{}
	if opts.Max > 0 {
		params.Set("max", strconv.Itoa(opts.Max))
	}
	if opts.Band > 0 {
		params.Set("band", strconv.FormatFloat(opts.Band, 'f', -1, 64))
	}
	if opts.ByPrice {
		params.Set("by_price", "1")
	} else if opts.Seed != nil {
		params.Set("seed", strconv.FormatInt(*opts.Seed, 10))
	}

	endpoint := fmt.Sprintf("%s/api/properties/%d", c.baseURL, id)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp propertyResponse
	if err := c.get(endpoint, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Property, resp.Similar, nil
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(endpoint string, v interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
