package docs

import (
	_ "embed"
	"net/http"
)

// Спецификация написана вручную и соответствует маршрутам в internal/app/server.go.
// При изменении API правим оба места.
//
//go:embed openapi.json
var openapiJSON []byte

// ServeOpenAPI отдает спецификацию OpenAPI в формате JSON.
func ServeOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapiJSON)
}
