// Binary relayd is the streaming relay server: it terminates bearer auth,
// accepts relay-protocol generation requests, and streams Claude completions
// back as SSE. Run it next to the debate CLI so claude-family models work
// without exposing the Anthropic credential to the client side.
//
// Environment:
//
//	ANTHROPIC_API_KEY  required, the upstream credential
//	ANTHROPIC_BASE_URL optional, overrides the upstream endpoint
//	RELAY_TOKEN        optional, bearer token clients must present
//
// A .env file in the working directory is loaded first.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/bitop-dev/debate/pkg/ai/providers/claude"
	"github.com/bitop-dev/debate/pkg/ai/providers/relay"
)

func main() {
	addr := flag.String("addr", ":3001", "listen address")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	provider, err := claude.New(os.Getenv("ANTHROPIC_API_KEY"), os.Getenv("ANTHROPIC_BASE_URL"))
	if err != nil {
		fatalf("%v", err)
	}

	token := os.Getenv("RELAY_TOKEN")
	if token == "" {
		logger.Warn("RELAY_TOKEN not set, accepting unauthenticated requests")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.Handle(relay.DefaultPath, relay.NewHandler(provider, token, logger))

	logged := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mux.ServeHTTP(w, r)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})

	logger.Info("relay server listening", "addr", *addr, "path", relay.DefaultPath)
	if err := http.ListenAndServe(*addr, logged); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "relayd: "+format+"\n", args...)
	os.Exit(1)
}
