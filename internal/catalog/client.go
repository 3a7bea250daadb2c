// Package catalog provides a client for the remote product catalog API
// abstracted behind an interface for testability.
package catalog

import (
	"context"
)

// Client fetches one page of products from the catalog.
type Client interface {
	// FetchPage requests page pageIndex of size pageSize, that is the
	// products at offset pageIndex*pageSize. Every call issues a request.
	FetchPage(ctx context.Context, pageIndex, pageSize int) (*Page, error)
}

// Offset returns the catalog offset for the given page index and size.
func Offset(pageIndex, pageSize int) int {
	return pageIndex * pageSize
}
