// Package pixabay is a client for the Pixabay image search API.
package pixabay

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/timmy/pixgallery/internal/config"
	"github.com/timmy/pixgallery/internal/domain"
	"github.com/timmy/pixgallery/internal/logger"
)

const defaultBaseURL = "https://pixabay.com/api/"

// Searcher fetches one page of image hits for a search term.
type Searcher interface {
	FetchImages(ctx context.Context, searchTerm string, page int) (*domain.SearchResult, error)
}

// Config holds the fixed API parameters sent with every request.
type Config struct {
	BaseURL     string
	APIKey      string
	ImageType   string
	Orientation string
	SafeSearch  bool
	PerPage     int
	Language    string
	Timeout     time.Duration
	RateLimit   float64 // requests per second; <= 0 disables pacing
	Burst       int
}

// ConfigFrom converts the pixabay section of the application config.
func ConfigFrom(cfg *config.PixabayConfig) *Config {
	return &Config{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		ImageType:   cfg.ImageType,
		Orientation: cfg.Orientation,
		SafeSearch:  cfg.SafeSearch,
		PerPage:     cfg.PerPage,
		Language:    cfg.Language,
		Timeout:     cfg.Timeout,
		RateLimit:   cfg.RateLimit,
		Burst:       cfg.Burst,
	}
}

// Client performs image searches against the Pixabay API.
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
	baseURL string
	params  map[string]string
}

var _ Searcher = (*Client)(nil)

// NewClient creates a new Pixabay client.
// Parameters:
//   - cfg: API key, endpoint and fixed query parameters.
//
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	params := map[string]string{
		"key":        cfg.APIKey,
		"safesearch": strconv.FormatBool(cfg.SafeSearch),
	}
	if cfg.ImageType != "" {
		params["image_type"] = cfg.ImageType
	}
	if cfg.Orientation != "" {
		params["orientation"] = cfg.Orientation
	}
	if cfg.Language != "" {
		params["lang"] = cfg.Language
	}
	if cfg.PerPage > 0 {
		params["per_page"] = strconv.Itoa(cfg.PerPage)
	}

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		baseURL: baseURL,
		params:  params,
	}
}

// FetchImages requests one page of hits for searchTerm.
// The call issues exactly one HTTP GET and does not touch any page counter.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - searchTerm: text to search for.
//   - page: 1-based results page.
//
// Returns:
//   - *domain.SearchResult: the decoded payload, unchanged.
//   - error: *NetworkFailure on transport failure, *NoResultsFound on an empty hit list.
func (c *Client) FetchImages(ctx context.Context, searchTerm string, page int) (*domain.SearchResult, error) {
	query := domain.Query{SearchTerm: searchTerm, Page: page}
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkFailure{Query: query, Err: err}
	}

	start := time.Now()
	var result domain.SearchResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(c.params).
		SetQueryParam("q", searchTerm).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&result).
		Get(c.baseURL)
	if err != nil {
		return nil, &NetworkFailure{Query: query, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &NetworkFailure{
			Query:      query,
			StatusCode: resp.StatusCode(),
			Err:        statusError(resp),
		}
	}

	logger.With(logger.Fields{
		logger.FieldSearchTerm: searchTerm,
		logger.FieldPage:       page,
		logger.FieldTotal:      result.TotalHits,
	}).WithCount(len(result.Hits)).WithDuration(time.Since(start).Milliseconds()).
		Debug(ctx, "Pixabay search completed")

	if len(result.Hits) == 0 {
		return nil, &NoResultsFound{Query: query}
	}

	return &result, nil
}

// statusErr is the failure for a response outside the 2xx range.
type statusErr struct {
	code int
	body string
}

func (e *statusErr) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.code)
}

func statusError(resp *resty.Response) error {
	return &statusErr{
		code: resp.StatusCode(),
		body: strings.TrimSpace(string(resp.Body())),
	}
}

// ResponseBody returns the body of a failed response carried by err, if any.
// Pixabay reports bad keys and invalid parameters as plain text bodies.
func ResponseBody(err error) string {
	var se *statusErr
	if errors.As(err, &se) {
		return se.body
	}
	return ""
}
