package httpapi

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed docs/openapi.yaml
var openAPIDocument []byte

const openAPIPath = "/api-docs/openapi.yaml"

// mountDocs serves the embedded OpenAPI document and a Swagger UI reading it.
func mountDocs(r chi.Router) {
	r.Get(openAPIPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIDocument)
	})
	r.Get("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api-docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL(openAPIPath)))
}
