package catalog

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

	"github.com/donaldgifford/catalog-browser/internal/metrics"
)

const (
	// DefaultBaseURL is the public catalog the browser was built against.
	DefaultBaseURL = "https://dummyjson.com"

	productsPath     = "/products"
	defaultUserAgent = "catalog-browser"
	maxErrorBody     = 512
)

// HTTPClient implements Client against the catalog's REST products endpoint.
type HTTPClient struct {
	baseURL     string
	userAgent   string
	client      *http.Client
	rateLimiter *RateLimiter
}

// Option configures the HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the default catalog base address.
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = hc
	}
}

// WithTimeout replaces the HTTP client with one using timeout d. Apply it
// before WithHTTPClient or not at all when supplying a custom client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.client = &http.Client{Timeout: d}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithRateLimiter injects a rate limiter. When set, every FetchPage call
// goes through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *HTTPClient) {
		c.rateLimiter = r
	}
}

// NewHTTPClient creates a new catalog client.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type productsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// FetchPage implements Client.FetchPage.
func (c *HTTPClient) FetchPage(
	ctx context.Context,
	pageIndex, pageSize int,
) (*Page, error) {
	if pageIndex < 0 || pageSize <= 0 {
		return nil, fmt.Errorf(
			"%w: page index %d, page size %d",
			ErrInvalidPageRequest, pageIndex, pageSize,
		)
	}

	start := time.Now()
	page, err := c.fetch(ctx, pageIndex, pageSize)
	metrics.CatalogRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CatalogRequestsTotal.WithLabelValues("success").Inc()
	return page, nil
}

// Ping checks that the catalog answers a minimal products request.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.fetch(ctx, 0, 1)
	return err
}

func (c *HTTPClient) fetch(ctx context.Context, pageIndex, pageSize int) (*Page, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: "rate limit", Err: err}
		}
	}

	offset := Offset(pageIndex, pageSize)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.buildProductsURL(pageSize, offset),
		http.NoBody,
	)
	if err != nil {
		return nil, &TransportError{Op: "creating request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: "executing request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Op:  "reading response body",
			Err: err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Op:         "fetching products",
			StatusCode: resp.StatusCode,
			Body:       truncateBody(body),
		}
	}

	var apiResp productsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &TransportError{
			Op:  "parsing products response",
			Err: err,
		}
	}

	products := apiResp.Products
	if products == nil {
		products = []Product{}
	}

	return &Page{
		Index:    pageIndex,
		Products: products,
		Total:    apiResp.Total,
		Skip:     apiResp.Skip,
		Limit:    apiResp.Limit,
	}, nil
}

func (c *HTTPClient) buildProductsURL(limit, skip int) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))

	return c.baseURL + productsPath + "?" + params.Encode()
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
