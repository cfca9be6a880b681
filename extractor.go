package pagelayout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/preprocess"
	"github.com/tsawler/pagelayout/source"
)

const instrumentationName = "github.com/tsawler/pagelayout"

var (
	// ErrNoPages is returned by Document when the page selection is empty
	ErrNoPages = errors.New("pagelayout: no pages to process")

	// ErrPageOutOfRange is returned when a selected page does not exist
	ErrPageOutOfRange = errors.New("pagelayout: page out of range")
)

// Extractor provides a fluent interface for analyzing the layout of a
// document. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string

	// Pages, once read
	pages  []model.Page
	loaded bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// Loaded pages are shared; they are never modified in place.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		pages:    e.pages,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ensurePages reads the source file if it has not been read yet.
func (e *Extractor) ensurePages(ctx context.Context) error {
	if e.loaded {
		return nil
	}

	pages, err := source.Open(ctx, e.filename, e.options.source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.filename, err)
	}

	e.pages = pages
	e.loaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor)
// ============================================================================

// Pages selects specific pages to analyze (1-indexed).
// Multiple calls accumulate pages.
//
// Example:
//
//	doc, _, err := pagelayout.Open("paper.pdf").Pages(1, 3, 5).Document(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange selects a range of pages to analyze (1-indexed, inclusive).
//
// Example:
//
//	doc, _, err := pagelayout.Open("paper.pdf").PageRange(5, 10).Document(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Workers sets how many pages are analyzed concurrently. Zero or less
// means one worker per CPU.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// WithParams replaces the analysis tunables. Invalid params are reported
// by the terminal operation.
//
// Example:
//
//	params := layout.DefaultParams()
//	params.MinAlleyWidth = 12
//	doc, _, err := pagelayout.Open("paper.pdf").WithParams(params).Document(ctx)
func (e *Extractor) WithParams(params layout.Params) *Extractor {
	newExt := e.clone()
	newExt.options.params = params
	if err := params.Validate(); err != nil && newExt.err == nil {
		newExt.err = err
	}
	return newExt
}

// WithPreprocess replaces the preprocessing options and turns
// preprocessing back on if it was skipped.
func (e *Extractor) WithPreprocess(opts preprocess.Options) *Extractor {
	newExt := e.clone()
	newExt.options.preprocess = opts
	newExt.options.skipPreprocess = false
	return newExt
}

// SkipPreprocess analyzes pages as they are: no rescaling, no line
// filtering and no page number widening. Use it when the pages already
// are in the working coordinate space.
func (e *Extractor) SkipPreprocess() *Extractor {
	newExt := e.clone()
	newExt.options.skipPreprocess = true
	return newExt
}

// WithSourceOptions replaces the options used to read the file. It has no
// effect on an Extractor created with FromPages.
func (e *Extractor) WithSourceOptions(opts source.Options) *Extractor {
	newExt := e.clone()
	newExt.options.source = opts
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source, ignoring the page
// selection.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensurePages(context.Background()); err != nil {
		return 0, err
	}
	return len(e.pages), nil
}

// Document analyzes the selected pages and returns the layout record of
// the document. Pages are analyzed concurrently; the result keeps page
// order. Pages left without text lines are reported as warnings.
//
// Example:
//
//	doc, warnings, err := pagelayout.Open("paper.pdf").Document(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, page := range doc.Pages {
//	    fmt.Println(page.Number, page.DoubleColumn)
//	}
func (e *Extractor) Document(ctx context.Context) (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensurePages(ctx); err != nil {
		return nil, nil, err
	}

	pageIndices, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}
	if len(pageIndices) == 0 {
		return nil, nil, ErrNoPages
	}

	workers := e.options.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	analyzer := layout.NewAnalyzerWithParams(e.options.params)
	inst := newInstruments()

	layouts := make([]*model.PageLayout, len(pageIndices))
	empty := make([]bool, len(pageIndices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, idx := range pageIndices {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pl, lines := e.analyzePage(gctx, analyzer, inst, e.pages[idx])
			layouts[i] = pl
			empty[i] = lines == 0
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument(uuid.NewString())
	var warnings []Warning
	for i, pl := range layouts {
		doc.AddPage(pl)
		if empty[i] {
			warnings = append(warnings, Warning{Page: pl.Number, Message: "no text lines found"})
		}
	}

	return doc, warnings, nil
}

// ============================================================================
// Internal Helpers
// ============================================================================

// analyzePage runs preprocessing and analysis of one page and returns its
// layout together with the number of lines that were analyzed.
func (e *Extractor) analyzePage(ctx context.Context, analyzer *layout.Analyzer, inst instruments, page model.Page) (*model.PageLayout, int) {
	_, span := otel.Tracer(instrumentationName).Start(ctx, "analyze page")
	defer span.End()

	start := time.Now()

	if !e.options.skipPreprocess {
		page = preprocess.Page(page, e.options.preprocess)
	}
	pl := analyzer.Analyze(page)

	elapsed := time.Since(start)
	attrs := metric.WithAttributes(attribute.Bool("double_column", pl.DoubleColumn))
	inst.pages.Add(ctx, 1, attrs)
	inst.duration.Record(ctx, elapsed.Seconds(), attrs)

	span.SetAttributes(
		attribute.Int("page.number", page.Number),
		attribute.Int("page.lines", len(page.Lines)),
		attribute.Bool("page.double_column", pl.DoubleColumn),
	)

	slog.DebugContext(ctx, "analyzed page",
		"page", page.Number,
		"lines", len(page.Lines),
		"double_column", pl.DoubleColumn,
		"elapsed", elapsed,
	)

	return pl, len(page.Lines)
}

// resolvePages converts the 1-indexed page selection to sorted, unique
// 0-indexed positions.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := len(e.pages)

	// If no pages specified, use all pages
	if len(e.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("%w: %d (1-%d)", ErrPageOutOfRange, p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	sort.Ints(pageIndices)
	return pageIndices, nil
}

type instruments struct {
	pages    metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments() instruments {
	meter := otel.Meter(instrumentationName)

	pages, err := meter.Int64Counter("pagelayout.pages",
		metric.WithDescription("Number of analyzed pages"),
		metric.WithUnit("{page}"),
	)
	if err != nil {
		pages = noop.Int64Counter{}
	}

	duration, err := meter.Float64Histogram("pagelayout.page.duration",
		metric.WithDescription("Time spent analyzing one page"),
		metric.WithUnit("s"),
	)
	if err != nil {
		duration = noop.Float64Histogram{}
	}

	return instruments{pages: pages, duration: duration}
}
