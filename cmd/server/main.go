package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hazyhaar/hebmorph/pkg/api"
	"github.com/hazyhaar/hebmorph/pkg/importer"
	"github.com/hazyhaar/hebmorph/pkg/lemma"
	"github.com/hazyhaar/hebmorph/pkg/lexicon"
	"gopkg.in/yaml.v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type config struct {
	Addr                string        `yaml:"addr"`
	DictPath            string        `yaml:"dict_path"`
	DictSearchPaths     []string      `yaml:"dict_search_paths"`
	LogLevel            string        `yaml:"log_level"`
	MaxBodyBytes        int64         `yaml:"max_body_bytes"`
	MaxSentences        int           `yaml:"max_sentences"`
	MCP                 mcpConfig     `yaml:"mcp"`
	SourcesDB           string        `yaml:"sources_db"`
	SourceCheckInterval time.Duration `yaml:"source_check_interval"`
}

type mcpConfig struct {
	Enabled bool `yaml:"enabled"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "lemmatize":
		cmdLemmatize(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "sources":
		cmdSources(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: hebmorph <command> [flags]

Commands:
  serve       Start the HTTP server
  mcp         Serve MCP tools over stdin/stdout
  lemmatize   Lemmatize sentences from arguments or stdin
  import      Build a dictionary from a lexicon source
  sources     List, configure and check import sources
  version     Print the version
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	addr := fs.String("addr", "", "listen address (overrides config)")
	dictPath := fs.String("dict", "", "dictionary directory (overrides config)")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dictPath != "" {
		cfg.DictPath = *dictPath
	}
	logger := newLogger(cfg.LogLevel)

	// The dictionary is loaded once; without it there is no service.
	lex, ep := loadService(cfg, logger)

	opts := api.Options{MaxBodyBytes: cfg.MaxBodyBytes}
	if cfg.MCP.Enabled {
		opts.MCP = api.NewMCPServer(ep, version)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(ep, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SourceCheckInterval > 0 {
		sdb, err := importer.OpenSourceDB(cfg.SourcesDB)
		if err != nil {
			logger.Warn("source checks disabled", "error", err)
		} else {
			defer sdb.Close()
			go importer.NewChecker(sdb, logger, cfg.SourceCheckInterval).Start(ctx)
		}
	}

	go func() {
		logger.Info("hebmorph listening",
			"addr", cfg.Addr,
			"dictionary", lex.Manifest.ID,
			"mcp", cfg.MCP.Enabled,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// loadService opens the configured dictionary and builds the endpoints on
// top of it. A dictionary that cannot be loaded is fatal.
func loadService(cfg config, logger *slog.Logger) (*lexicon.Lexicon, *api.Endpoints) {
	lex, err := lexicon.Open(cfg.DictPath, cfg.DictSearchPaths)
	if err != nil {
		logger.Error("failed to load dictionary", "path", cfg.DictPath, "error", err)
		os.Exit(1)
	}
	logger.Info("dictionary loaded",
		"id", lex.Manifest.ID,
		"version", lex.Manifest.Version,
		"entries", lex.Len(),
		"candidates", lex.Candidates(),
	)
	return lex, api.NewEndpoints(lex, lemma.NewService(lex), logger, cfg.MaxSentences)
}

func defaultConfig() config {
	return config{
		Addr:         ":5001",
		LogLevel:     "info",
		MaxBodyBytes: 1 << 20,
		MaxSentences: 1000,
		MCP:          mcpConfig{Enabled: true},
		SourcesDB:    "dicts/sources.db",
	}
}

func loadConfig(path string) config {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg
		}
		fmt.Fprintf(os.Stderr, "read config: %v\n", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse config %s: %v\n", path, err)
		os.Exit(1)
	}
	return cfg
}

// newLogger returns a text logger on stderr. Unknown levels mean info.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
