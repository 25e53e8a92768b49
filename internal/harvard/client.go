package harvard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// PageFetcher fetches one page of the object listing.
// This interface is implemented by *Client and can be used for testing.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (*ObjectPage, error)
}

// Ensure Client implements PageFetcher at compile time.
var _ PageFetcher = (*Client)(nil)

const (
	// DefaultBaseURL is the public Harvard Art Museums API.
	DefaultBaseURL = "https://api.harvardartmuseums.org"

	// DefaultTimeout is generous because a page with fields=* can be large.
	DefaultTimeout = 1000 * time.Second

	// DefaultBreakerThreshold is the number of consecutive failures that
	// opens the circuit breaker.
	DefaultBreakerThreshold = 5

	defaultUserAgent = "curator/0.1"
	maxErrorBody     = 256
)

// Client talks to the Harvard Art Museums HTTP API. It is safe for
// concurrent use; the only mutable state is the in-flight request set.
type Client struct {
	http      *resty.Client
	endpoints registry
	breaker   *gobreaker.CircuitBreaker
	log       logrus.FieldLogger

	mu       sync.Mutex
	inflight map[uuid.UUID]int // request id -> page
}

type clientOptions struct {
	timeout          time.Duration
	userAgent        string
	logger           logrus.FieldLogger
	endpoints        []Endpoint
	breakerThreshold int
}

// Option customizes a Client.
type Option func(*clientOptions)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		if strings.TrimSpace(ua) != "" {
			o.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEndpoints replaces the default endpoint set. Passing no endpoints
// leaves the client unable to serve any response kind.
func WithEndpoints(endpoints ...Endpoint) Option {
	return func(o *clientOptions) {
		o.endpoints = endpoints
	}
}

// WithBreakerThreshold sets how many consecutive failures open the breaker.
// Zero disables the breaker.
func WithBreakerThreshold(n int) Option {
	return func(o *clientOptions) {
		if n >= 0 {
			o.breakerThreshold = n
		}
	}
}

// NewClient builds a Client for baseURL that authenticates with apiKey.
// An empty apiKey is accepted; the server rejects such requests at fetch time.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	o := clientOptions{
		timeout:          DefaultTimeout,
		userAgent:        defaultUserAgent,
		endpoints:        []Endpoint{ObjectEndpoint(apiKey)},
		breakerThreshold: DefaultBreakerThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		o.logger = discard
	}

	httpClient := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(o.timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", o.userAgent)

	c := &Client{
		http:      httpClient,
		endpoints: newRegistry(o.endpoints),
		log:       o.logger.WithField("component", "harvard"),
		inflight:  make(map[uuid.UUID]int),
	}
	if o.breakerThreshold > 0 {
		c.breaker = newBreaker(o.breakerThreshold, c.log)
	}
	return c, nil
}

// FetchPage retrieves one page of the object listing. Every failure is a
// *RequestError wrapping ErrUnsupportedResponse, a *TransportError, a
// *ServerError or a *DecodingError.
func (c *Client) FetchPage(ctx context.Context, page int) (*ObjectPage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	ep, err := c.endpoints.lookup(KindObjectPage)
	if err != nil {
		return nil, &RequestError{Page: page, Err: err}
	}

	id := c.track(page)
	defer c.untrack(id)

	log := c.log.WithFields(logrus.Fields{"request_id": id.String(), "page": page})
	log.Debug("page request dispatched")
	start := time.Now()

	body, err := c.execute(ctx, ep, page)
	if err != nil {
		log.WithError(err).Warn("page request failed")
		return nil, &RequestError{Page: page, Err: err}
	}

	result, err := DecodeObjectPage(body)
	if err != nil {
		log.WithError(err).Warn("page response rejected")
		return nil, &RequestError{Page: page, Err: err}
	}

	log.WithFields(logrus.Fields{
		"records":     len(result.Records),
		"total_pages": result.Info.TotalPages,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("page fetched")
	return result, nil
}

// InFlight returns the number of requests currently being processed.
func (c *Client) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}

func (c *Client) track(page int) uuid.UUID {
	id := uuid.New()
	c.mu.Lock()
	c.inflight[id] = page
	c.mu.Unlock()
	return id
}

func (c *Client) untrack(id uuid.UUID) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
}

func (c *Client) execute(ctx context.Context, ep Endpoint, page int) ([]byte, error) {
	call := func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParamsFromValues(ep.Query).
			SetQueryParam("page", strconv.Itoa(page)).
			Get(ep.Path)
		if err != nil {
			return nil, &TransportError{Err: err}
		}
		if !resp.IsSuccess() {
			return nil, &ServerError{
				StatusCode: resp.StatusCode(),
				Status:     resp.Status(),
				Body:       snippet(resp.Body()),
			}
		}
		return resp.Body(), nil
	}

	var (
		out interface{}
		err error
	)
	if c.breaker != nil {
		out, err = c.breaker.Execute(call)
	} else {
		out, err = call()
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &TransportError{Err: err}
		}
		return nil, err
	}
	return out.([]byte), nil
}

func newBreaker(threshold int, log logrus.FieldLogger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "harvard-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// Client errors mean the request was wrong, not that the API is down.
			var serverErr *ServerError
			if errors.As(err, &serverErr) {
				return serverErr.StatusCode < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
