package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/pokedeck/internal/logging"
)

// DefaultBaseURL is the public PokéAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// maxErrorBodyBytes bounds how much of an error body is drained before closing.
const maxErrorBodyBytes = 4096

// StatusError is returned when PokéAPI answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, e.StatusText())
}

// StatusText returns the HTTP reason phrase, e.g. "Not Found".
func (e *StatusError) StatusText() string {
	return http.StatusText(e.StatusCode)
}

// Client talks to PokéAPI. It does no caching and no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient returns a client rooted at baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTypes fetches GET /type.
func (c *Client) ListTypes(ctx context.Context) (*NamedAPIResourceList, error) {
	var out NamedAPIResourceList
	if err := c.getJSON(ctx, c.baseURL+"/type", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetType fetches GET /type/{name}.
func (c *Client) GetType(ctx context.Context, name string) (*Type, error) {
	var out Type
	if err := c.getJSON(ctx, c.baseURL+"/type/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPokemon fetches GET /pokemon/{id}/.
func (c *Client) GetPokemon(ctx context.Context, id int) (*Pokemon, error) {
	return c.GetPokemonByURL(ctx, c.baseURL+"/pokemon/"+strconv.Itoa(id)+"/")
}

// GetPokemonByURL fetches a Pokémon detail record from an absolute URL, as
// found in a type's member list.
func (c *Client) GetPokemonByURL(ctx context.Context, rawURL string) (*Pokemon, error) {
	var out Pokemon
	if err := c.getJSON(ctx, rawURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().
		Ctx(ctx).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("pokeapi request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return nil
}
