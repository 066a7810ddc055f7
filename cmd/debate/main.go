// Binary debate runs a two-persona model debate in the terminal: it streams
// each turn as it is generated, prints the closing synthesis, and can export
// the transcript as markdown.
//
// Usage:
//
//	debate [flags]
//
// Flags:
//
//	-config  path to YAML config file (default: debate.yaml; missing file = built-in defaults)
//	-turns   override max_turns
//	-report  path to a report/context file to ground the debate in
//	-export  write the transcript to this markdown file ("auto" = timestamped name)
//	-v       debug logging on stderr
//
// Credentials come from the config file or the environment: GEMINI_API_KEY
// for the direct provider, RELAY_TOKEN for the relay. A .env file in the
// working directory is loaded first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bitop-dev/debate/pkg/ai"
	"github.com/bitop-dev/debate/pkg/ai/providers/google"
	"github.com/bitop-dev/debate/pkg/ai/providers/relay"
	"github.com/bitop-dev/debate/pkg/auth"
	"github.com/bitop-dev/debate/pkg/debate"
)

func main() {
	configPath := flag.String("config", "debate.yaml", "path to debate config file")
	turnsFlag := flag.Int("turns", 0, "override max_turns from the config")
	reportFlag := flag.String("report", "", "path to a report/context file")
	exportFlag := flag.String("export", "", "write transcript markdown to this file (\"auto\" = timestamped)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	// .env first, so ${ENV} references in the config file resolve.
	_ = godotenv.Load()

	cfg := loadConfig(*configPath)
	if *turnsFlag > 0 {
		cfg.MaxTurns = *turnsFlag
	}
	if *reportFlag != "" {
		data, err := os.ReadFile(*reportFlag)
		if err != nil {
			fatalf("report: %v", err)
		}
		cfg.ReportContext = string(data)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	gen := ai.NewGenerator(
		google.New(cfg.GeminiAPIKey, ""),
		relay.New(cfg.RelayURL),
	)

	eng := debate.New(cfg.Config, debate.Options{
		Generator: gen,
		Tokens:    auth.NewStatic(cfg.RelayToken),
		Logger:    logger,
	})

	// Ctrl-C cancels the debate cooperatively; committed turns are kept.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	unsub := eng.Subscribe(newPrinter(cfg.Config))
	defer unsub()

	if err := eng.Start(ctx); err != nil {
		fatalf("debate: %v", err)
	}

	state := eng.State()
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\n[interrupted]")
	}

	if *exportFlag != "" {
		path := *exportFlag
		if path == "auto" {
			path = debate.ExportFileName(time.Now())
		}
		conclusion := ""
		if state.Conclusion != nil {
			conclusion = *state.Conclusion
		}
		doc := debate.ExportMarkdown(state.Messages, cfg.Personas, conclusion)
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			fatalf("export: %v", err)
		}
		fmt.Fprintf(os.Stderr, "[exported %s]\n", path)
	}
}

// loadConfig reads the config file, falling back to built-in defaults plus
// environment credentials when the default file is absent.
func loadConfig(path string) *debate.FileConfig {
	cfg, err := debate.LoadFileConfig(path)
	if err == nil {
		if cfg.GeminiAPIKey == "" {
			cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.RelayToken == "" {
			cfg.RelayToken = os.Getenv("RELAY_TOKEN")
		}
		return cfg
	}
	if errors.Is(err, os.ErrNotExist) {
		return &debate.FileConfig{
			Config:       debate.DefaultConfig(),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			RelayURL:     envOr("RELAY_URL", "http://localhost:3001"),
			RelayToken:   os.Getenv("RELAY_TOKEN"),
		}
	}
	fatalf("config: %v", err)
	return nil
}

// newPrinter renders engine events as a live terminal transcript.
func newPrinter(cfg debate.Config) func(debate.Event) {
	var current debate.Persona
	headerShown := false

	return func(ev debate.Event) {
		switch ev.Type {
		case debate.EventStreamDelta:
			if ev.Streaming != nil && (!headerShown || ev.Streaming.Persona != current) {
				current = ev.Streaming.Persona
				headerShown = true
				name := cfg.Personas[current].Name
				fmt.Printf("\n── %s (%s) ──\n", name, ev.Streaming.Model)
			}
			fmt.Print(ev.Delta)

		case debate.EventMessage:
			fmt.Println()
			headerShown = false

		case debate.EventStatus:
			if ev.Status == debate.StatusConcluding {
				fmt.Print("\n── Executive Summary ──\n")
			}

		case debate.EventConclusionDelta:
			fmt.Print(ev.Delta)

		case debate.EventConclusion:
			fmt.Println()
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "debate: "+format+"\n", args...)
	os.Exit(1)
}
