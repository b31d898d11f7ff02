// Package api provides the HTTP server, versioned REST routes and API
// documentation endpoints.
package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed openapi.json
var openapiSpec embed.FS

const swaggerPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>knowd API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="docs"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: %q,
      dom_id: "#docs",
      deepLinking: true,
      displayRequestDuration: true,
      tryItOutEnabled: true,
    });
  };
</script>
</body>
</html>
`

// DocsRouter serves the Swagger UI page and the OpenAPI document.
type DocsRouter struct {
	specURL string
	spec    []byte
}

// NewDocsRouter creates a documentation router. specURL is the path the
// UI fetches the OpenAPI document from, relative to wherever the router
// gets mounted.
func NewDocsRouter(specURL string) *DocsRouter {
	spec, _ := fs.ReadFile(openapiSpec, "openapi.json")
	return &DocsRouter{specURL: specURL, spec: spec}
}

// Routes returns the chi router for documentation endpoints.
func (d *DocsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", d.servePage)
	router.Get("/openapi.json", d.serveSpec)
	return router
}

func (d *DocsRouter) servePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, swaggerPage, d.specURL)
}

func (d *DocsRouter) serveSpec(w http.ResponseWriter, r *http.Request) {
	if len(d.spec) == 0 {
		http.Error(w, "openapi document not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(d.specFor(r))
}

// specFor returns the OpenAPI document with its servers entry pointed
// at the host the request arrived on, so "Try it out" targets the right
// base URL behind any proxy. On a malformed document it falls back to
// the raw bytes.
func (d *DocsRouter) specFor(r *http.Request) []byte {
	var doc map[string]any
	if err := json.Unmarshal(d.spec, &doc); err != nil {
		return d.spec
	}
	doc["servers"] = []map[string]string{{"url": serverURLFor(r)}}
	patched, err := json.Marshal(doc)
	if err != nil {
		return d.spec
	}
	return patched
}

func serverURLFor(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}
	return scheme + "://" + host
}
