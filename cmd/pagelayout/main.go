package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/pagelayout"
	"github.com/tsawler/pagelayout/config"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/server"
	"github.com/tsawler/pagelayout/telemetry"
)

const usage = `usage:
  pagelayout analyze [-pages 1,2] [-workers N] [-config file] [-o out.json] [-raw] <input>
  pagelayout serve [-config file] [-addr :8080]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if telemetry.EnableDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "pagelayout")

	if err != nil {
		slog.Error("failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		err = analyze(ctx, os.Args[2:])

	case "serve":
		err = serve(ctx, os.Args[2:])

	default:
		fmt.Fprint(os.Stderr, usage)
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}

	if serr := shutdown(context.Background()); serr != nil {
		slog.Warn("telemetry shutdown failed", "error", serr)
	}

	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Parse(path)
}

func analyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)

	pagesFlag := fs.String("pages", "", "pages to analyze, like 1,3,5-7 (default all)")
	workersFlag := fs.Int("workers", 0, "pages analyzed concurrently (default config or one per CPU)")
	configFlag := fs.String("config", "", "config file")
	outputFlag := fs.String("o", "", "output file (default stdout)")
	rawFlag := fs.Bool("raw", false, "skip preprocessing")

	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("analyze takes exactly one input file")
	}

	cfg, err := loadConfig(*configFlag)

	if err != nil {
		return err
	}

	pages, err := pagelayout.ParsePages(*pagesFlag)

	if err != nil {
		return err
	}

	workers := cfg.Workers

	if *workersFlag > 0 {
		workers = *workersFlag
	}

	e := pagelayout.Open(fs.Arg(0)).
		Pages(pages...).
		Workers(workers).
		WithParams(cfg.Params).
		WithPreprocess(cfg.Preprocess).
		WithSourceOptions(cfg.Source)

	if *rawFlag || cfg.SkipPreprocess {
		e = e.SkipPreprocess()
	}

	doc, warnings, err := e.Document(ctx)

	if err != nil {
		return err
	}

	for _, w := range warnings {
		slog.Warn(w.String())
	}

	if *outputFlag == "" {
		return encodeDocument(os.Stdout, doc)
	}

	return writeDocument(*outputFlag, doc)
}

// writeDocument writes doc as JSON to path. A failed close is reported
// when encoding succeeded.
func writeDocument(path string, doc *model.Document) (err error) {
	f, err := os.Create(path)

	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return encodeDocument(f, doc)
}

func encodeDocument(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

func serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)

	configFlag := fs.String("config", "", "config file")
	addrFlag := fs.String("addr", "", "listen address (default config or :8080)")

	fs.Parse(args)

	cfg, err := loadConfig(*configFlag)

	if err != nil {
		return err
	}

	if *addrFlag != "" {
		cfg.Address = *addrFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		return err
	}

	return s.ListenAndServe(ctx)
}
