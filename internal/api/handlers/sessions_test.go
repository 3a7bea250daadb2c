package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/catalog-browser/internal/api/handlers"
	"github.com/donaldgifford/catalog-browser/internal/catalog"
	catalogMocks "github.com/donaldgifford/catalog-browser/internal/catalog/mocks"
	"github.com/donaldgifford/catalog-browser/internal/pager"
	"github.com/donaldgifford/catalog-browser/internal/session"
)

const testPageSize = 10

// catalogPage builds page index of a catalog holding total products.
func catalogPage(index, total int) *catalog.Page {
	start := index * testPageSize
	end := min(start+testPageSize, total)
	products := make([]catalog.Product, 0, max(end-start, 0))
	for id := start + 1; id <= end; id++ {
		products = append(products, catalog.Product{ID: id, Title: "Product", Price: 10})
	}
	return &catalog.Page{Products: products, Total: total, Skip: start, Limit: testPageSize}
}

func newSessionStore(client catalog.Client) *session.Store {
	return session.NewStore(func() *pager.Controller {
		return pager.New(client, pager.WithPageSize(testPageSize))
	})
}

func newSessionsAPI(t *testing.T, store *session.Store) humatest.TestAPI {
	t.Helper()

	h := handlers.NewSessionsHandler(store, slog.New(slog.DiscardHandler))
	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, h)
	return api
}

type sessionJSON struct {
	ID        string            `json:"id"`
	Products  []catalog.Product `json:"products"`
	Loaded    int               `json:"loaded"`
	Total     int               `json:"total"`
	HasMore   bool              `json:"has_more"`
	Status    string            `json:"status"`
	LastError string            `json:"last_error"`
	Appended  []catalog.Product `json:"appended"`
}

func decodeSession(t *testing.T, body []byte) sessionJSON {
	t.Helper()

	var s sessionJSON
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func TestSessionsHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setupMock   func(*catalogMocks.MockClient)
		wantLoaded  int
		wantHasMore bool
		wantError   bool
	}{
		{
			name: "loads first page",
			setupMock: func(m *catalogMocks.MockClient) {
				m.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(catalogPage(0, 25), nil).Once()
			},
			wantLoaded:  10,
			wantHasMore: true,
		},
		{
			name: "small catalog is exhausted after one page",
			setupMock: func(m *catalogMocks.MockClient) {
				m.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(catalogPage(0, 4), nil).Once()
			},
			wantLoaded: 4,
		},
		{
			name: "failed first page keeps the session",
			setupMock: func(m *catalogMocks.MockClient) {
				m.EXPECT().FetchPage(mock.Anything, 0, testPageSize).
					Return(nil, &catalog.TransportError{Op: "fetching products", StatusCode: http.StatusServiceUnavailable}).
					Once()
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := catalogMocks.NewMockClient(t)
			tt.setupMock(mc)
			store := newSessionStore(mc)
			api := newSessionsAPI(t, store)

			resp := api.Post("/api/v1/sessions")
			require.Equal(t, http.StatusCreated, resp.Code)

			got := decodeSession(t, resp.Body.Bytes())
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.wantLoaded, got.Loaded)
			assert.Len(t, got.Products, tt.wantLoaded)
			assert.Equal(t, tt.wantHasMore, got.HasMore)
			assert.Equal(t, "idle", got.Status)
			assert.Equal(t, tt.wantError, got.LastError != "")
			assert.Equal(t, 1, store.Len())
		})
	}
}

func TestSessionsHandler_ScrollToEnd(t *testing.T) {
	t.Parallel()

	mc := catalogMocks.NewMockClient(t)
	for i := range 3 {
		mc.EXPECT().FetchPage(mock.Anything, i, testPageSize).Return(catalogPage(i, 25), nil).Once()
	}
	api := newSessionsAPI(t, newSessionStore(mc))

	created := decodeSession(t, api.Post("/api/v1/sessions").Body.Bytes())
	require.Equal(t, 10, created.Loaded)

	wantLoaded := []int{20, 25}
	for _, want := range wantLoaded {
		resp := api.Post("/api/v1/sessions/" + created.ID + "/next")
		require.Equal(t, http.StatusOK, resp.Code)

		got := decodeSession(t, resp.Body.Bytes())
		assert.Equal(t, want, got.Loaded)
		assert.Len(t, got.Products, want)
		assert.NotEmpty(t, got.Appended)
	}

	// Exhausted: no fetch, nothing appended.
	resp := api.Post("/api/v1/sessions/" + created.ID + "/next")
	require.Equal(t, http.StatusOK, resp.Code)

	got := decodeSession(t, resp.Body.Bytes())
	assert.Equal(t, 25, got.Loaded)
	assert.False(t, got.HasMore)
	assert.Empty(t, got.Appended)
	assert.Equal(t, 1, got.Products[0].ID)
	assert.Equal(t, 25, got.Products[24].ID)
}

func TestSessionsHandler_NextFailure(t *testing.T) {
	t.Parallel()

	mc := catalogMocks.NewMockClient(t)
	mc.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(catalogPage(0, 25), nil).Once()
	mc.EXPECT().FetchPage(mock.Anything, 1, testPageSize).Return(nil, errors.New("connection reset")).Once()
	api := newSessionsAPI(t, newSessionStore(mc))

	created := decodeSession(t, api.Post("/api/v1/sessions").Body.Bytes())

	resp := api.Post("/api/v1/sessions/" + created.ID + "/next")
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "loading page 1")

	// Held products are untouched.
	resp = api.Get("/api/v1/sessions/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	got := decodeSession(t, resp.Body.Bytes())
	assert.Equal(t, 10, got.Loaded)
	assert.True(t, got.HasMore)
	assert.Equal(t, "idle", got.Status)
}

func TestSessionsHandler_InitRetry(t *testing.T) {
	t.Parallel()

	mc := catalogMocks.NewMockClient(t)
	mc.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(nil, errors.New("timeout")).Once()
	mc.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(nil, errors.New("timeout")).Once()
	mc.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(catalogPage(0, 25), nil).Once()
	api := newSessionsAPI(t, newSessionStore(mc))

	created := decodeSession(t, api.Post("/api/v1/sessions").Body.Bytes())
	require.NotEmpty(t, created.LastError)
	assert.Zero(t, created.Loaded)

	resp := api.Post("/api/v1/sessions/" + created.ID + "/init")
	require.Equal(t, http.StatusBadGateway, resp.Code)

	resp = api.Post("/api/v1/sessions/" + created.ID + "/init")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 10, decodeSession(t, resp.Body.Bytes()).Loaded)

	// Already initialized: no further fetch.
	resp = api.Post("/api/v1/sessions/" + created.ID + "/init")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 10, decodeSession(t, resp.Body.Bytes()).Loaded)
}

func TestSessionsHandler_UnknownSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(api humatest.TestAPI) int
	}{
		{
			name: "get",
			call: func(api humatest.TestAPI) int { return api.Get("/api/v1/sessions/missing").Code },
		},
		{
			name: "init",
			call: func(api humatest.TestAPI) int { return api.Post("/api/v1/sessions/missing/init").Code },
		},
		{
			name: "next",
			call: func(api humatest.TestAPI) int { return api.Post("/api/v1/sessions/missing/next").Code },
		},
		{
			name: "delete",
			call: func(api humatest.TestAPI) int { return api.Delete("/api/v1/sessions/missing").Code },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mc := catalogMocks.NewMockClient(t)
			api := newSessionsAPI(t, newSessionStore(mc))
			assert.Equal(t, http.StatusNotFound, tt.call(api))
		})
	}
}

func TestSessionsHandler_Delete(t *testing.T) {
	t.Parallel()

	mc := catalogMocks.NewMockClient(t)
	mc.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(catalogPage(0, 25), nil).Once()
	store := newSessionStore(mc)
	api := newSessionsAPI(t, store)

	created := decodeSession(t, api.Post("/api/v1/sessions").Body.Bytes())

	resp := api.Delete("/api/v1/sessions/" + created.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)
	assert.Zero(t, store.Len())

	resp = api.Get("/api/v1/sessions/" + created.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSessionsHandler_ConcurrentNextReportsOwnAppend(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	mc := catalogMocks.NewMockClient(t)
	mc.EXPECT().FetchPage(mock.Anything, 0, testPageSize).Return(catalogPage(0, 25), nil).Once()
	mc.EXPECT().
		FetchPage(mock.Anything, 1, testPageSize).
		RunAndReturn(func(_ context.Context, index, _ int) (*catalog.Page, error) {
			close(started)
			<-release
			return catalogPage(index, 25), nil
		}).
		Once()
	api := newSessionsAPI(t, newSessionStore(mc))

	created := decodeSession(t, api.Post("/api/v1/sessions").Body.Bytes())
	path := "/api/v1/sessions/" + created.ID + "/next"

	pending := make(chan []byte, 1)
	go func() {
		pending <- api.Post(path).Body.Bytes()
	}()

	<-started
	busy := api.Post(path)
	require.Equal(t, http.StatusOK, busy.Code)
	close(release)

	loaded := decodeSession(t, <-pending)
	skipped := decodeSession(t, busy.Body.Bytes())

	assert.Empty(t, skipped.Appended)
	assert.Equal(t, "loading-next", skipped.Status)
	assert.Len(t, loaded.Appended, testPageSize)
	assert.Equal(t, 11, loaded.Appended[0].ID)
	assert.Equal(t, 20, loaded.Loaded)
}
