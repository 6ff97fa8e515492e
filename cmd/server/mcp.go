// CLAUDE:SUMMARY CLI subcommand that serves the lemmatization MCP tools over stdin/stdout for local agents.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/hebmorph/pkg/api"
	"github.com/hazyhaar/hebmorph/pkg/mcpstream"
)

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	dictPath := fs.String("dict", "", "dictionary directory (overrides config)")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *dictPath != "" {
		cfg.DictPath = *dictPath
	}
	// stdout carries the protocol; logs go to stderr only.
	logger := newLogger(cfg.LogLevel)
	_, ep := loadService(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := mcpstream.NewHandler(api.NewMCPServer(ep, version), logger)
	if err := h.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("mcp session failed", "error", err)
		os.Exit(1)
	}
}
