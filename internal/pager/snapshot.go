package pager

import "github.com/donaldgifford/catalog-browser/internal/catalog"

// Snapshot is a consistent view of the controller taken under one lock,
// for renderers that need products, totals and status to agree.
type Snapshot struct {
	Products []catalog.Product `json:"products"`
	Pages    int               `json:"pages"`
	PageSize int               `json:"page_size"`
	Loaded   int               `json:"loaded"`
	Total    int               `json:"total"`
	HasMore  bool              `json:"has_more"`
	Status   string            `json:"status"`
}

// Snapshot returns the current aggregate state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Products: c.allProductsLocked(),
		Pages:    len(c.pages),
		PageSize: c.pageSize,
		HasMore:  c.hasMoreLocked(),
		Status:   c.status.String(),
	}
	s.Loaded = len(s.Products)
	if len(c.pages) > 0 {
		s.Total = c.pages[len(c.pages)-1].Total
	}
	return s
}

// Since returns the products after the first n, the ones a renderer that
// has already shown n products still needs to append.
func (s Snapshot) Since(n int) []catalog.Product {
	if n < 0 {
		n = 0
	}
	if n >= len(s.Products) {
		return []catalog.Product{}
	}
	return s.Products[n:]
}
