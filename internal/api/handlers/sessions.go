package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/catalog-browser/internal/catalog"
	"github.com/donaldgifford/catalog-browser/internal/pager"
	"github.com/donaldgifford/catalog-browser/internal/session"
)

// SessionsHandler exposes browsing sessions as a JSON API, so clients other
// than the HTML grid can drive infinite scroll.
type SessionsHandler struct {
	store *session.Store
	log   *slog.Logger
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(store *session.Store, log *slog.Logger) *SessionsHandler {
	return &SessionsHandler{store: store, log: log}
}

// --- Input/Output types ---

// SessionBody is the aggregate state of one session.
type SessionBody struct {
	ID string `json:"id" doc:"Session UUID"`
	pager.Snapshot
	// LastError is set by create when the first page could not be loaded.
	// The session is kept so the client can retry with init.
	LastError string `json:"last_error,omitempty" doc:"Error from the initial page load"`
}

// SessionOutput is the response for every endpoint that returns a session.
type SessionOutput struct {
	Body SessionBody
}

// NextOutput is the response for loading the next page.
type NextOutput struct {
	Body struct {
		SessionBody
		Appended []catalog.Product `json:"appended" doc:"Products added by this call, empty on a no-op"`
	}
}

// SessionIDInput identifies a session by path.
type SessionIDInput struct {
	ID string `path:"id" doc:"Session UUID"`
}

// --- Handlers ---

// Create starts a session and loads its first page.
func (h *SessionsHandler) Create(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	sess := h.store.Create()

	resp := &SessionOutput{}
	if err := sess.Controller.Initialize(ctx); err != nil {
		h.log.Warn("initial page load failed", "session", sess.ID, "err", err)
		resp.Body.LastError = err.Error()
	}
	resp.Body.ID = sess.ID
	resp.Body.Snapshot = sess.Controller.Snapshot()

	return resp, nil
}

// Get returns the session's aggregate state without fetching.
func (h *SessionsHandler) Get(_ context.Context, input *SessionIDInput) (*SessionOutput, error) {
	sess, ok := h.store.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("session not found")
	}

	resp := &SessionOutput{}
	resp.Body.ID = sess.ID
	resp.Body.Snapshot = sess.Controller.Snapshot()
	return resp, nil
}

// Init loads the first page if it is not loaded yet.
func (h *SessionsHandler) Init(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
	sess, ok := h.store.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("session not found")
	}

	if err := sess.Controller.Initialize(ctx); err != nil {
		return nil, loadFailure(err)
	}

	resp := &SessionOutput{}
	resp.Body.ID = sess.ID
	resp.Body.Snapshot = sess.Controller.Snapshot()
	return resp, nil
}

// Next loads the page after the last one held. Calls made while a fetch is
// in flight or after the catalog is exhausted return the current state with
// nothing appended.
func (h *SessionsHandler) Next(ctx context.Context, input *SessionIDInput) (*NextOutput, error) {
	sess, ok := h.store.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("session not found")
	}

	appended, err := sess.Controller.LoadNextPage(ctx)
	if err != nil {
		return nil, loadFailure(err)
	}

	resp := &NextOutput{}
	resp.Body.ID = sess.ID
	resp.Body.Snapshot = sess.Controller.Snapshot()
	resp.Body.Appended = appended
	return resp, nil
}

// Delete ends a session.
func (h *SessionsHandler) Delete(_ context.Context, input *SessionIDInput) (*struct{}, error) {
	if !h.store.Delete(input.ID) {
		return nil, huma.Error404NotFound("session not found")
	}
	return nil, nil
}

func loadFailure(err error) error {
	var le *pager.LoadError
	if errors.As(err, &le) {
		return huma.Error502BadGateway("catalog unavailable: " + le.Error())
	}
	return huma.Error500InternalServerError("loading page: " + err.Error())
}

// RegisterSessionRoutes registers session endpoints with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Create a browsing session",
		Description:   "Creates a session and loads the first page of products.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.Create)

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get a session",
		Description: "Returns every product loaded so far and whether more remain.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "init-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/init",
		Summary:     "Load the first page",
		Description: "Loads the first page unless it is already loaded or loading. Used to retry a failed initial load.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.Init)

	huma.Register(api, huma.Operation{
		OperationID: "next-page",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/next",
		Summary:     "Load the next page",
		Description: "Appends the next page of products when more remain and no fetch is in flight.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.Next)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{id}",
		Summary:       "Delete a session",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.Delete)
}
