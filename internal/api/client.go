// Package api is the HTTP client for the evaluation service.
package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nikbrunner/mev/internal/logger"
	"github.com/nikbrunner/mev/internal/model"
)

var (
	ErrNoBaseURL       = errors.New("api base URL not set")
	ErrRequest         = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// Error is a non-2xx response.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, body)
}

// StatusCode returns the HTTP status.
func (e *Error) StatusCode() int { return e.Status }

// Options configures New.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	PageCache int           // cached search pages, 0 disables
	PageTTL   time.Duration // lifetime of a cached page
	DishCache int           // restaurants whose dish list is cached, 0 disables
	Logger    *charmlog.Logger
}

// Client talks to the evaluation service. The session cookie set by Login
// is kept for the lifetime of the client.
type Client struct {
	http   *resty.Client
	log    *charmlog.Logger
	pages  *expirable.LRU[string, []model.MenuItem]
	dishes *lru.Cache[string, []model.Menu]
}

// New creates a client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got: %q", u.Scheme)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	c := &Client{
		log: opts.Logger,
		http: resty.New().
			SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
			SetTimeout(opts.Timeout).
			SetHeader("Accept", "application/json").
			SetLogger(opts.Logger),
	}

	if opts.PageCache > 0 {
		c.pages = expirable.NewLRU[string, []model.MenuItem](opts.PageCache, nil, opts.PageTTL)
	}
	if opts.DishCache > 0 {
		c.dishes, err = lru.New[string, []model.Menu](opts.DishCache)
		if err != nil {
			return nil, fmt.Errorf("create dish cache: %w", err)
		}
	}

	return c, nil
}

// check turns a resty result into an error.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if resp.IsError() {
		c.log.Debug("api error", "method", resp.Request.Method, "url", resp.Request.URL, "status", resp.StatusCode())
		return &Error{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// invalidateCaches drops every cached page and dish list.
func (c *Client) invalidateCaches() {
	if c.pages != nil {
		c.pages.Purge()
	}
	if c.dishes != nil {
		c.dishes.Purge()
	}
}
