// Package pager implements the incremental pagination controller: it owns
// the pages fetched so far in a browsing session, decides whether more
// pages remain, and guarantees at most one catalog fetch is in flight.
package pager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/donaldgifford/catalog-browser/internal/catalog"
	"github.com/donaldgifford/catalog-browser/internal/metrics"
)

// DefaultPageSize matches the page size the product grid was designed for.
const DefaultPageSize = 10

// Status is the controller's fetch state.
type Status int

const (
	// StatusIdle means no fetch is in flight.
	StatusIdle Status = iota
	// StatusLoadingFirst means page 0 is being fetched.
	StatusLoadingFirst
	// StatusLoadingNext means a subsequent page is being fetched.
	StatusLoadingNext
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoadingFirst:
		return "loading-first"
	case StatusLoadingNext:
		return "loading-next"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// LoadError is returned by Initialize and LoadNext when the catalog fetch
// for a page fails. Pages already held are never affected.
type LoadError struct {
	PageIndex int
	Err       error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading page %d: %v", e.PageIndex, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Controller accumulates catalog pages for one browsing session.
//
// The mutex only protects field access and status transitions; it is never
// held across a catalog call. Re-entrant triggers arriving while a fetch
// is pending observe a non-idle status and return immediately.
type Controller struct {
	client   catalog.Client
	pageSize int
	logger   *slog.Logger

	mu     sync.Mutex
	pages  []catalog.Page
	status Status
}

// Option configures the Controller.
type Option func(*Controller)

// WithPageSize overrides DefaultPageSize. Non-positive values are ignored.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates an empty Controller in the idle state.
func New(client catalog.Client, opts ...Option) *Controller {
	c := &Controller{
		client:   client,
		pageSize: DefaultPageSize,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize fetches page 0 if nothing has been loaded yet and no fetch is
// in flight. It is a no-op otherwise, so it is safe to call on every render.
// On failure the controller stays empty and idle and Initialize may be
// called again.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if len(c.pages) > 0 {
		c.mu.Unlock()
		metrics.PagerSkippedTriggersTotal.WithLabelValues("initialized").Inc()
		return nil
	}
	if c.status != StatusIdle {
		c.mu.Unlock()
		metrics.PagerSkippedTriggersTotal.WithLabelValues("busy").Inc()
		return nil
	}
	c.status = StatusLoadingFirst
	c.mu.Unlock()

	_, err := c.load(ctx, 0, "first")
	return err
}

// LoadNext fetches the page after the last one held. It returns immediately
// without fetching when a fetch is already in flight, when the controller
// has not been initialized, or when the catalog is exhausted.
func (c *Controller) LoadNext(ctx context.Context) error {
	_, err := c.LoadNextPage(ctx)
	return err
}

// LoadNextPage is LoadNext reporting the products this call appended. The
// slice is empty when the call was a no-op, even if a concurrent call
// appended a page meanwhile.
func (c *Controller) LoadNextPage(ctx context.Context) ([]catalog.Product, error) {
	c.mu.Lock()
	if c.status != StatusIdle {
		c.mu.Unlock()
		metrics.PagerSkippedTriggersTotal.WithLabelValues("busy").Inc()
		return []catalog.Product{}, nil
	}
	if !c.hasMoreLocked() {
		c.mu.Unlock()
		metrics.PagerSkippedTriggersTotal.WithLabelValues("exhausted").Inc()
		return []catalog.Product{}, nil
	}
	index := len(c.pages)
	c.status = StatusLoadingNext
	c.mu.Unlock()

	page, err := c.load(ctx, index, "next")
	if err != nil {
		return nil, err
	}
	return append([]catalog.Product{}, page.Products...), nil
}

// load performs the fetch for index and returns the appended page. The
// caller must have moved the status out of idle; load always moves it back.
func (c *Controller) load(ctx context.Context, index int, kind string) (*catalog.Page, error) {
	c.logger.Debug("loading page", "page", index, "page_size", c.pageSize, "kind", kind)

	page, err := c.client.FetchPage(ctx, index, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusIdle

	if err != nil {
		metrics.PagerLoadsTotal.WithLabelValues(kind, "error").Inc()
		c.logger.Warn("page load failed", "page", index, "err", err)
		return nil, &LoadError{PageIndex: index, Err: err}
	}

	page.Index = index
	c.pages = append(c.pages, *page)

	metrics.PagerLoadsTotal.WithLabelValues(kind, "success").Inc()
	metrics.PagerProductsLoaded.Observe(float64(len(page.Products)))
	c.logger.Debug("page loaded",
		"page", index,
		"products", len(page.Products),
		"loaded", c.loadedLocked(),
		"total", page.Total,
	)

	return page, nil
}

// HasMore reports whether the catalog holds products beyond those loaded.
// It is false before the first page arrives.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMoreLocked()
}

// hasMoreLocked trusts the total reported by the most recent page. An empty
// page also ends pagination, so a catalog that shrinks mid-session cannot
// cause a run of empty fetches.
func (c *Controller) hasMoreLocked() bool {
	if len(c.pages) == 0 {
		return false
	}
	last := c.pages[len(c.pages)-1]
	if len(last.Products) == 0 {
		return false
	}
	return c.loadedLocked() < last.Total
}

func (c *Controller) loadedLocked() int {
	n := 0
	for i := range c.pages {
		n += len(c.pages[i].Products)
	}
	return n
}

// AllProducts returns every loaded product in fetch order.
func (c *Controller) AllProducts() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allProductsLocked()
}

func (c *Controller) allProductsLocked() []catalog.Product {
	all := make([]catalog.Product, 0, c.loadedLocked())
	for i := range c.pages {
		all = append(all, c.pages[i].Products...)
	}
	return all
}

// Status returns the current fetch state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Pages returns a copy of the pages held, in fetch order.
func (c *Controller) Pages() []catalog.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]catalog.Page(nil), c.pages...)
}

// Total returns the catalog size reported by the most recent page, or 0
// before initialization.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pages) == 0 {
		return 0
	}
	return c.pages[len(c.pages)-1].Total
}

// PageSize returns the number of products requested per page.
func (c *Controller) PageSize() int {
	return c.pageSize
}
