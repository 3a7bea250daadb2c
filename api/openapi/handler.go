// Package openapi serves the sessions API's OpenAPI 3.1 document and a
// Swagger UI over it.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Catalog Browser API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/swagger/swagger.json",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`

// Spec holds the rendered OpenAPI document.
type Spec struct {
	JSON []byte
	YAML []byte
}

// Render serializes doc as JSON and YAML. Call it after every operation
// has been registered.
func Render(doc *huma.OpenAPI) (*Spec, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling OpenAPI JSON: %w", err)
	}

	// JSON is valid YAML; round-trip through a generic value to re-emit it.
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("converting OpenAPI to YAML: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshaling OpenAPI YAML: %w", err)
	}

	return &Spec{JSON: data, YAML: out}, nil
}

// RegisterRoutes adds Swagger UI and spec endpoints to the Echo instance.
func RegisterRoutes(e *echo.Echo, spec *Spec) {
	e.GET("/swagger/swagger.json", serveSpec(spec.JSON, "application/json"))
	e.GET("/swagger/swagger.yaml", serveSpec(spec.YAML, "application/yaml"))
	e.GET("/swagger/index.html", serveUI)
	e.GET("/swagger", redirectToUI)
	e.GET("/swagger/", redirectToUI)
}

func serveSpec(data []byte, contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Blob(http.StatusOK, contentType, data)
	}
}

func serveUI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIHTML)
}

func redirectToUI(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
}
