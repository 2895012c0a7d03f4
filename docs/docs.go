// Package docs serves the OpenAPI description consumed by the swagger UI.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.yaml
var openAPISpec []byte

// SpecPath is where the swagger UI fetches the document from.
const SpecPath = "/swagger/openapi.yaml"

func Spec() []byte {
	return openAPISpec
}

func SpecHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openAPISpec)
}
