package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type pingOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	api := humaecho.New(e, huma.DefaultConfig("Catalog Browser API", "test"))
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/api/v1/ping",
	}, func(_ context.Context, _ *struct{}) (*pingOutput, error) {
		return &pingOutput{}, nil
	})

	spec, err := Render(api.OpenAPI())
	require.NoError(t, err)
	RegisterRoutes(e, spec)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSpecJSON(t *testing.T) {
	t.Parallel()

	rec := get(newServer(t), "/swagger/swagger.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/v1/ping")
}

func TestSpecYAML(t *testing.T) {
	t.Parallel()

	rec := get(newServer(t), "/swagger/swagger.yaml")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.1.0", doc["openapi"])
}

func TestSwaggerUI(t *testing.T) {
	t.Parallel()

	e := newServer(t)

	rec := get(e, "/swagger/index.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/swagger/swagger.json")

	for _, path := range []string{"/swagger", "/swagger/"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusMovedPermanently, rec.Code, path)
		assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"), path)
	}
}
