// CLAUDE:SUMMARY CLI subcommand that builds dictionaries from lexicon sources via import adapters and records them in the source catalogue.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/hebmorph/pkg/importer"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	source := fs.String("source", "", "adapter ID to import (e.g. lexicon-tsv)")
	all := fs.Bool("all", false, "import every source that has a URL")
	url := fs.String("url", "", "source URL or local path; saved for later imports")
	outputDir := fs.String("output-dir", "", "output directory for dictionaries (default: directory of sources_db)")
	fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *outputDir == "" {
		*outputDir = filepath.Dir(cfg.SourcesDB)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sdb := openSources(cfg.SourcesDB)
	defer sdb.Close()

	if !*all && *source == "" {
		printSources(sdb)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  hebmorph import --source <id> [--url <url|path>] [--output-dir <dir>]")
		fmt.Println("  hebmorph import --all [--output-dir <dir>]")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *all {
		failed := 0
		for _, a := range importer.All() {
			u, err := sdb.GetURL(a.ID())
			if err != nil {
				fmt.Fprintf(os.Stderr, "[%s] ERROR (URL): %v\n", a.ID(), err)
				failed++
				continue
			}
			if u == "" {
				fmt.Printf("[%s] skipped: no source URL\n", a.ID())
				continue
			}
			if err := runImport(ctx, sdb, a, u, *outputDir); err != nil {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	a, err := importer.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Println("\nAvailable sources:")
		for _, a := range importer.All() {
			fmt.Printf("  %s\n", a.ID())
		}
		os.Exit(1)
	}

	if *url != "" {
		if err := sdb.SetURL(a.ID(), *url); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] ERROR (URL): %v\n", a.ID(), err)
			os.Exit(1)
		}
	}
	u, err := sdb.GetURL(a.ID())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ERROR (URL): %v\n", a.ID(), err)
		os.Exit(1)
	}
	if err := runImport(ctx, sdb, a, u, *outputDir); err != nil {
		os.Exit(1)
	}
}

func runImport(ctx context.Context, sdb *importer.SourceDB, a importer.Adapter, url, outputDir string) error {
	fmt.Printf("[%s] importing...\n", a.ID())
	n, err := a.Import(ctx, url, outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
		return err
	}
	if err := sdb.RecordImport(a.ID(), n); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] WARNING: %v\n", a.ID(), err)
	}
	fmt.Printf("[%s] OK: %d entries -> %s/\n", a.ID(), n, filepath.Join(outputDir, a.DictID()))
	return nil
}

// openSources opens the catalogue and seeds a row for every registered adapter.
func openSources(path string) *importer.SourceDB {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sdb, err := importer.OpenSourceDB(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := sdb.Seed(importer.All()); err != nil {
		sdb.Close()
		fmt.Fprintf(os.Stderr, "Error seeding sources: %v\n", err)
		os.Exit(1)
	}
	return sdb
}
