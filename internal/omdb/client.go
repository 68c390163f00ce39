package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors describe the expected lookup failure modes. Their text is
// user-facing; handlers surface it as-is.
var (
	// ErrNotConfigured is returned when the API key is absent or still the
	// placeholder. No network call is made in that state.
	ErrNotConfigured = errors.New("OMDb API key is not configured. Please set OMDB_API_KEY environment variable")

	// ErrNoSelector indicates the caller supplied neither an imdb id nor a title.
	ErrNoSelector = errors.New("either an imdb id or a title must be provided")

	// ErrTimeout indicates the single bounded attempt ran out of time.
	ErrTimeout = errors.New("request timeout, please try again")

	// ErrUnreachable covers any other transport or upstream failure.
	ErrUnreachable = errors.New("connection failed, please check your internet connection")
)

// NotFoundError carries the upstream-provided reason when the API answers
// with Response "False".
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

// Record is the raw structured payload returned for a found movie.
type Record struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Director string `json:"Director"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	IMDBID   string `json:"imdbID"`
}

// PosterURL normalizes OMDb's literal "N/A" poster to absence.
func (r *Record) PosterURL() *string {
	if r.Poster == "" || r.Poster == "N/A" {
		return nil
	}
	poster := r.Poster
	return &poster
}

// Query selects a movie by exactly one of imdb id or title.
type Query struct {
	IMDBID string
	Title  string
}

// Client defines the contract for querying the movie-metadata API.
type Client interface {
	Lookup(ctx context.Context, q Query) (*Record, error)
}

// HTTPClient implements Client over HTTP with a single bounded attempt.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	configured bool
	client     *http.Client
	logger     *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed OMDb client. A placeholder or
// empty key yields a client whose lookups fail with ErrNotConfigured.
func NewHTTPClient(baseURL, apiKey, placeholderKey string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	return &HTTPClient{
		baseURL:    parsed,
		apiKey:     apiKey,
		configured: apiKey != "" && apiKey != placeholderKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

type apiResponse struct {
	Record
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Lookup fetches movie details by imdb id or title. Expected failures come
// back as the sentinel errors above or as *NotFoundError; no retries are made.
func (c *HTTPClient) Lookup(ctx context.Context, q Query) (*Record, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	switch {
	case q.IMDBID != "":
		params.Set("i", q.IMDBID)
	case q.Title != "":
		params.Set("t", q.Title)
	default:
		return nil, ErrNoSelector
	}

	endpoint := *c.baseURL
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("omdb: unexpected status %d", resp.StatusCode)
		return nil, ErrUnreachable
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Printf("omdb: decode response: %v", err)
		return nil, ErrUnreachable
	}

	if !strings.EqualFold(payload.Response, "True") {
		reason := payload.Error
		if reason == "" {
			reason = "Movie not found."
		}
		return nil, &NotFoundError{Reason: reason}
	}

	record := payload.Record
	return &record, nil
}

func (c *HTTPClient) classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Printf("omdb: request timeout: %v", err)
		return ErrTimeout
	}
	c.logger.Printf("omdb: request error: %v", err)
	return ErrUnreachable
}
