// Command server starts the PageSentry API server: HTTP + WebSocket access
// to the privacy-analysis pipeline and the persisted report history.
// Usage: go run ./cmd/server [listen addr]
// Default listen addr: :8080
package main

import (
	"log"
	"os"

	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/server"
)

func main() {
	cfg := server.Config{
		ListenAddr: ":8080",
		Logger:     logging.NewStdoutLogger("Server"),
	}

	// Optional: custom listen address from command line
	if len(os.Args) > 1 {
		cfg.ListenAddr = os.Args[1]
	}

	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}
	defer s.Close()

	log.Printf("PageSentry API listening on %s", cfg.ListenAddr)
	if err := s.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
