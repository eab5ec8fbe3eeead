// Package main is the docstudio CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/papermind/docstudio/internal/assistant"
	"github.com/papermind/docstudio/internal/config"
	"github.com/papermind/docstudio/internal/embedding"
	"github.com/papermind/docstudio/internal/export"
	"github.com/papermind/docstudio/internal/extract"
	"github.com/papermind/docstudio/internal/genai"
	"github.com/papermind/docstudio/internal/server"
	"github.com/papermind/docstudio/internal/session"
	"github.com/papermind/docstudio/internal/vector"
	"github.com/papermind/docstudio/internal/watcher"
	"github.com/papermind/docstudio/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/docstudio/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "docstudio server" from the project dir picks up the
// project's config. A missing default file falls back to built-in defaults.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), "(defaults)", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "ask":
		runAsk()
	case "version", "--version", "-v":
		fmt.Printf("docstudio version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (ingestion, retrieval, model calls)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if len(cfg.Watch.Directories) > 0 {
		sess := components.Session
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.New(
			cfg.Watch.Directories,
			cfg.Watch.Extensions,
			cfg.Watch.RecursiveOrDefault(),
			func(path string) {
				if _, err := sess.AddFile(context.Background(), path); err != nil {
					logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Session,
		components.Assistant,
		components.Watermark,
		components.Model,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: docstudio ingest [flags] <file> [file...]")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	ctx := context.Background()
	for _, path := range fs.Args() {
		doc, err := components.Session.AddFile(ctx, path)
		if err != nil {
			fmt.Printf("Ingest failed for %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Ingested %s: %d pages, %d chunks (id %s)\n", doc.Name, doc.PageCount, len(doc.Chunks), doc.ID)
	}
}

// runAsk ingests the given files, answers one question, and prints the result.
// Strict mode: the answer comes only from the supplied documents.
func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	file := fs.String("file", "", "document to ingest before asking (repeatable via comma separation)")
	lang := fs.String("lang", "", "answer language code")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: docstudio ask [flags] <question>")
		os.Exit(1)
	}
	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Println("Usage: docstudio ask [flags] <question>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	ctx := context.Background()
	if *file != "" {
		for _, path := range strings.Split(*file, ",") {
			if _, err := components.Session.AddFile(ctx, strings.TrimSpace(path)); err != nil {
				fmt.Printf("Ingest failed for %s: %v\n", path, err)
				os.Exit(1)
			}
		}
	}

	results := components.Session.Search(ctx, question, cfg.Search.TopK)
	if len(results) == 0 {
		fmt.Println("No relevant information found in documents.")
		return
	}
	answer := components.Assistant.AnswerQuestion(ctx, question, results, *lang)

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(answer); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Println(answer.Answer)
		if len(answer.Sources) > 0 {
			fmt.Println()
			fmt.Println("Sources:")
			for _, src := range answer.Sources {
				fmt.Printf("  %s - Page %s\n", src.File, src.Page)
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Session   *session.Session
	Assistant *assistant.Assistant
	Watermark *export.Watermark
	Model     string
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	apiKey := cfg.Gemini.APIKey()
	if err := genai.ValidateAPIKey(apiKey); err != nil {
		return nil, fmt.Errorf("%s (set %s)", err.Error(), cfg.Gemini.APIKeyEnv)
	}

	client := genai.NewClient(apiKey,
		genai.WithBaseURL(cfg.Gemini.BaseURL),
		genai.WithTimeout(time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second),
	)
	resolveCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	model, err := genai.Resolve(resolveCtx, client, cfg.Gemini.PreferredModels, logger)
	if err != nil {
		return nil, err
	}

	var embedder embedding.Embedder = embedding.NewGeminiEmbedder(&cfg.Gemini, apiKey)
	embedder = embedding.NewCached(embedder, cfg.Gemini.EmbeddingCacheSize)
	embedder = embedding.NewFallback(embedder, logger)

	store := vector.NewStore(embedder, vector.WithLogger(logger))
	parser := extract.NewParser(&cfg.Chunking)
	sess := session.New(parser, store, session.WithLogger(logger))

	gen := genai.NewGenerator(client, model, &cfg.Gemini, genai.WithGeneratorLogger(logger))
	asst := assistant.New(gen, &cfg.Search, assistant.WithLogger(logger))

	return &Components{
		Session:   sess,
		Assistant: asst,
		Watermark: export.NewWatermark(&cfg.Export),
		Model:     model,
	}, nil
}

func printUsage() {
	fmt.Println(`docstudio - Document question answering and study tools

Usage:
  docstudio server [flags]            Start the HTTP server
  docstudio ingest [flags] <file>...  Parse and index documents (sanity check)
  docstudio ask [flags] <question>    Ask a one-shot question over --file documents
  docstudio version                   Show version
  docstudio help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/docstudio/config.yaml)
  --debug            Enable debug logging (ingestion, retrieval, model calls)

Ask Flags:
  --config string    Config file path
  --file string      Comma-separated documents to ingest before asking
  --lang string      Answer language code (default from built-in registers)
  --output string    Output format: text or json (default: text)

The API key is read from the environment variable named by gemini.api_key_env
(default GEMINI_API_KEY). A .env file in the working directory is loaded if present.

Examples:
  docstudio server
  docstudio ingest report.pdf notes.docx
  docstudio ask --file report.pdf "What were the quarterly results?"
  docstudio ask --file report.pdf --output json "Summarize the risks"`)
}
