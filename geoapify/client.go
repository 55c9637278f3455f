// Package geoapify implements geoassist.Lookup against the Geoapify geocoding API.
package geoapify

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

	"github.com/goforj/geoassist"
)

const (
	// DefaultBaseURL is the public Geoapify API root.
	DefaultBaseURL = "https://api.geoapify.com/v1"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "geoassist"

	// maxErrorBody bounds how much of a failed response is kept in errors.
	maxErrorBody = 512
)

// ErrMissingAPIKey is returned by New when no API key is supplied.
var ErrMissingAPIKey = errors.New("geoapify: api key is required")

// Client calls the Geoapify autocomplete, search and reverse endpoints.
type Client struct {
	apiKey    string
	baseURL   string
	http      *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New returns a Client for apiKey. A blank key is a configuration error.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ geoassist.Lookup = (*Client)(nil)

// Search returns autocomplete suggestions for text.
func (c *Client) Search(ctx context.Context, text string, opts geoassist.Options) ([]geoassist.Place, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = geoassist.DefaultLimit
	}
	params := url.Values{
		"text":  {text},
		"limit": {strconv.Itoa(limit)},
	}
	if opts.Bias != "" {
		params.Set("bias", opts.Bias)
	}
	if opts.Filter != "" {
		params.Set("filter", opts.Filter)
	}
	fc, err := c.get(ctx, "/geocode/autocomplete", params)
	if err != nil {
		return nil, fmt.Errorf("geoapify autocomplete: %w", err)
	}
	return fc.places(), nil
}

// Geocode returns the best match for a free-form address.
func (c *Client) Geocode(ctx context.Context, address string) (geoassist.Place, bool, error) {
	fc, err := c.get(ctx, "/geocode/search", url.Values{
		"text":  {address},
		"limit": {"1"},
	})
	if err != nil {
		return geoassist.Place{}, false, fmt.Errorf("geoapify geocode: %w", err)
	}
	places := fc.places()
	if len(places) == 0 {
		return geoassist.Place{}, false, nil
	}
	return places[0], true, nil
}

// Reverse returns the place nearest to at.
func (c *Client) Reverse(ctx context.Context, at geoassist.Coordinates) (geoassist.Place, bool, error) {
	if !at.Valid() {
		return geoassist.Place{}, false, geoassist.ErrInvalidCoordinates
	}
	fc, err := c.get(ctx, "/geocode/reverse", url.Values{
		"lat": {strconv.FormatFloat(at.Lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(at.Lng, 'f', -1, 64)},
	})
	if err != nil {
		return geoassist.Place{}, false, fmt.Errorf("geoapify reverse: %w", err)
	}
	place, ok := geoassist.Nearest(at, fc.places())
	return place, ok, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*featureCollection, error) {
	params.Set("apiKey", c.apiKey)
	params.Set("format", "geojson")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &geoassist.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &fc, nil
}
