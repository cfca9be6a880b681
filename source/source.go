package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/model"
)

var (
	// ErrUnsupportedFormat is returned for input that is not a line box
	// dump, hOCR or PDF
	ErrUnsupportedFormat = errors.New("source: unsupported format")

	// ErrNoPages is returned when the input holds no pages
	ErrNoPages = errors.New("source: no pages found")
)

// DefaultRowGapRatio is the default Options.RowGapRatio
const DefaultRowGapRatio = 1.0

// Options controls how pages are read
type Options struct {
	// RowGapRatio splits a PDF text row into separate lines wherever the
	// horizontal gap between runs exceeds this multiple of the font size.
	// Default: 1.0
	RowGapRatio float64

	// ImageDir is the directory hOCR image references are resolved
	// against when a page has no bbox. References must name a regular file
	// inside ImageDir. Empty disables image lookup; Open sets it to the
	// directory of the hOCR file.
	ImageDir string
}

// DefaultOptions returns the default reading options
func DefaultOptions() Options {
	return Options{RowGapRatio: DefaultRowGapRatio}
}

// Open reads every page of the file at path. The format is detected from
// the file content, then from its extension.
func Open(ctx context.Context, path string, opts Options) ([]model.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	ft, err := format.DetectFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("detecting format: %w", err)
	}
	if ft == format.Unknown {
		ft = format.Detect(path)
	}
	if ft == format.HOCR && opts.ImageDir == "" {
		opts.ImageDir = filepath.Dir(path)
	}

	return Read(ctx, f, info.Size(), ft, opts)
}

// Read reads every page of r in the given format
func Read(ctx context.Context, r io.ReaderAt, size int64, ft format.Format, opts Options) ([]model.Page, error) {
	var (
		pages []model.Page
		err   error
	)

	switch ft {
	case format.PDF:
		pages, err = ReadPDF(ctx, r, size, opts)
	case format.LineBoxes:
		pages, err = ReadLineBoxes(io.NewSectionReader(r, 0, size))
	case format.HOCR:
		pages, err = ReadHOCR(ctx, io.NewSectionReader(r, 0, size), opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ft)
	}
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}

// ReadBytes detects the format of data, falling back to the extension of
// name, and reads every page
func ReadBytes(ctx context.Context, data []byte, name string, opts Options) ([]model.Page, error) {
	ft := format.DetectFromMagic(data)
	if ft == format.Unknown {
		ft = format.Detect(name)
	}
	return Read(ctx, bytes.NewReader(data), int64(len(data)), ft, opts)
}
