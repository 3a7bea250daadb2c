package client

import (
	"context"

	"github.com/donaldgifford/catalog-browser/internal/catalog"
	"github.com/donaldgifford/catalog-browser/internal/pager"
)

const sessionsPath = "/api/v1/sessions"

// Session is the server's view of one browsing session.
type Session struct {
	ID string `json:"id"`
	pager.Snapshot
	LastError string `json:"last_error,omitempty"`
}

// NextResult is a session after a next-page request, plus the products
// that request appended.
type NextResult struct {
	Session
	Appended []catalog.Product `json:"appended"`
}

// CreateSession starts a session; the server loads its first page.
// A failed first load is reported in Session.LastError, not as an error.
func (c *Client) CreateSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.post(ctx, sessionsPath, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession returns a session's aggregate state without fetching.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := c.get(ctx, sessionsPath+"/"+id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// InitSession reloads a session from the first page.
func (c *Client) InitSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := c.post(ctx, sessionsPath+"/"+id+"/init", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// NextPage asks the server to load the session's next page.
func (c *Client) NextPage(ctx context.Context, id string) (*NextResult, error) {
	var r NextResult
	if err := c.post(ctx, sessionsPath+"/"+id+"/next", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteSession discards a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.del(ctx, sessionsPath+"/"+id)
}
