// Package pagelayout provides a fluent API for finding the coarse layout of
// document pages: a head, an optional two-column section (left and right
// columns), and a foot.
//
// Basic usage:
//
//	doc, warnings, err := pagelayout.Open("paper.pdf").Document(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagelayout.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := pagelayout.Open("scan.hocr").
//	    Pages(1, 2, 3).
//	    Workers(4).
//	    Document(ctx)
//
// Pages that were extracted elsewhere can be analyzed directly:
//
//	doc, _, err := pagelayout.FromPages(pages).SkipPreprocess().Document(ctx)
//
// The analysis itself lives in the layout package and can be used without
// this facade.
package pagelayout

import (
	"github.com/tsawler/pagelayout/model"
)

// Open returns an Extractor for the line box JSON, hOCR or PDF file at
// path. Nothing is read until a terminal operation like Document is called.
//
// Example:
//
//	doc, warnings, err := pagelayout.Open("paper.pdf").Document(ctx)
func Open(path string) *Extractor {
	return &Extractor{
		filename: path,
		options:  defaultOptions(),
	}
}

// FromPages returns an Extractor over pages that are already in memory.
// Pages without a number are numbered by their position, starting at 1.
// The pages are copied; later changes to the slice are not seen.
//
// Example:
//
//	page := model.NewPage(1, model.NewRect(0, 0, 500, 700))
//	page.AddLine(model.NewRect(0, 0, 200, 10), "Introduction")
//	doc, _, err := pagelayout.FromPages([]model.Page{*page}).Document(ctx)
func FromPages(pages []model.Page) *Extractor {
	loaded := make([]model.Page, len(pages))
	for i, p := range pages {
		loaded[i] = *p.Clone()
		if loaded[i].Number == 0 {
			loaded[i].Number = i + 1
		}
	}
	return &Extractor{
		pages:   loaded,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagelayout.Must(pagelayout.Open("paper.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a call to Document and panics if the
// error is non-nil. It discards warnings and returns just the document.
//
// Example:
//
//	doc := pagelayout.MustDocument(pagelayout.Open("paper.pdf").Document(ctx))
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
