/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the CicedoHR console server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite blob store
  3. Load (or seed) the roster from persistence
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: 8080)
  -db         SQLite database path (default: cicedohr.db)
              Use ":memory:" for in-memory database
  -llm-url    OpenAI-compatible base URL for the assistant
              (default: https://api.openai.com/v1)
  -llm-model  Model name for the assistant (default: gpt-4o-mini)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/cicedohr.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run against a local Ollama endpoint
  ./server -llm-url=http://localhost:11434/v1 -llm-model=llama3

ENVIRONMENT:
  OPENAI_API_KEY   Bearer token for the assistant endpoint (optional for
                   local OpenAI-compatible servers).

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cortsfranco/CicedoHR/api"
	"github.com/cortsfranco/CicedoHR/assistant"
	"github.com/cortsfranco/CicedoHR/roster"
	"github.com/cortsfranco/CicedoHR/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "cicedohr.db", "SQLite database path")
	llmURL := flag.String("llm-url", "https://api.openai.com/v1", "OpenAI-compatible base URL for the assistant")
	llmModel := flag.String("llm-model", "gpt-4o-mini", "Model name for the assistant")
	flag.Parse()

	// Initialize store
	persister, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer persister.Close()

	// Load the roster, seeding demo data on first run
	store := roster.Load(context.Background(), persister)

	// Initialize handler
	handler := api.NewHandler(store, assistant.New(*llmURL, *llmModel))

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
