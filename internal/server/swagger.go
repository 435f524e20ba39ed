package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title PageSentry API
// @version 1.0
// @description Interactive documentation for the PageSentry privacy-analysis API surface.
// @contact.name PageSentry Maintainers
// @contact.url https://github.com/pagesentry/pagesentry
// @BasePath /

import (
	_ "embed"
	"net/http"
)

//go:embed swagger.json
var swaggerDoc []byte

// handleSwaggerDoc serves the OpenAPI document consumed by the swagger UI.
func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(swaggerDoc)
}
