// CLAUDE:SUMMARY CLI subcommand that lemmatizes sentences from arguments or stdin and prints one JSON result per line.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hazyhaar/hebmorph/pkg/api"
	"github.com/hazyhaar/hebmorph/pkg/kit"
	"github.com/hazyhaar/hebmorph/pkg/lemma"
)

func cmdLemmatize(args []string) {
	fs := flag.NewFlagSet("lemmatize", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	dictPath := fs.String("dict", "", "dictionary directory (overrides config)")
	raw := fs.Bool("raw", false, "print every analyzer candidate instead of one lemma per word")
	strategyName := fs.String("strategy", "ranked", "lemma selection: ranked or first")
	fs.Parse(args)

	strategy, err := lemma.ParseStrategy(*strategyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	if *dictPath != "" {
		cfg.DictPath = *dictPath
	}
	// Keep the terminal quiet unless the config asks for more.
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	_, ep := loadService(cfg, newLogger(cfg.LogLevel))

	ctx := kit.WithTransport(context.Background(), "cli")
	out := json.NewEncoder(os.Stdout)
	run := func(sentence string) error {
		return lemmatizeOne(ctx, ep, out, sentence, strategy, *raw)
	}

	if fs.NArg() > 0 {
		for _, sentence := range fs.Args() {
			if err := run(sentence); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}
	if err := eachLine(os.Stdin, run); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func lemmatizeOne(ctx context.Context, ep *api.Endpoints, out *json.Encoder, sentence string, strategy lemma.Strategy, raw bool) error {
	if raw {
		cands, err := ep.Candidates(ctx, sentence)
		if err != nil {
			return err
		}
		return out.Encode(cands)
	}
	results, err := ep.LemmatizeSentences(ctx, []string{sentence}, strategy)
	if err != nil {
		return err
	}
	return out.Encode(results[0])
}

func eachLine(r io.Reader, fn func(string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
