package pagelayout

import (
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/preprocess"
	"github.com/tsawler/pagelayout/source"
)

// ExtractOptions holds the configuration of an Extractor.
type ExtractOptions struct {
	// Page selection (1-indexed positions, nil means all pages)
	pages []int

	// Concurrency; 0 means runtime.NumCPU()
	workers int

	// Analysis
	params         layout.Params
	preprocess     preprocess.Options
	skipPreprocess bool

	// Reading
	source source.Options
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:          nil,
		workers:        0,
		params:         layout.DefaultParams(),
		preprocess:     preprocess.DefaultOptions(),
		skipPreprocess: false,
		source:         source.DefaultOptions(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
