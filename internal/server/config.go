package server

import (
	"github.com/pagesentry/pagesentry/internal/app"
	"github.com/pagesentry/pagesentry/internal/logging"
)

// Config configures the API server.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string

	// AppConfig configures the orchestrator. Nil means app.DefaultConfig().
	AppConfig *app.Config

	// Logger is the structured logger. Nil means a stdout JSON logger.
	Logger logging.Logger
}
