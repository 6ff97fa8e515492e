package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/hebmorph/pkg/importer"
)

func cmdSources(args []string) {
	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	check := fs.Bool("check", false, "HEAD every remote source URL and record the result")
	adapter := fs.String("adapter", "", "adapter whose URL to change (with --url)")
	url := fs.String("url", "", "new source URL for --adapter")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	sdb := openSources(cfg.SourcesDB)
	defer sdb.Close()

	if *adapter != "" {
		if err := sdb.SetURL(*adapter, *url); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *check {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		sum := importer.NewChecker(sdb, newLogger(cfg.LogLevel), time.Hour).CheckAll(ctx)
		fmt.Printf("checked: %d ok, %d failed, %d skipped\n\n", sum.OK, sum.Failed, sum.Skipped)
	}

	printSources(sdb)
}

func printSources(sdb *importer.SourceDB) {
	sources, err := sdb.ListSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Sources:")
	fmt.Println()
	for _, src := range sources {
		status := ""
		if src.LastStatus != nil {
			status = fmt.Sprintf("  [%d]", *src.LastStatus)
		}
		imported := ""
		if src.LastImport != nil && src.EntryCount != nil {
			imported = fmt.Sprintf("  imported %s (%d entries)",
				time.Unix(*src.LastImport, 0).UTC().Format(time.DateOnly), *src.EntryCount)
		}
		u := src.SourceURL
		if u == "" {
			u = "(no URL)"
		}
		fmt.Printf("  %-20s  %s  (-> %s)%s%s\n      %s\n", src.AdapterID, src.Description, src.DictID, status, imported, u)
	}
}
