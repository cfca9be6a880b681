// Package format provides input format detection for the pagelayout library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// LineBoxes indicates a JSON dump of extracted text line boxes.
	LineBoxes
	// HOCR indicates an hOCR document produced by an OCR engine.
	HOCR
	// PDF indicates a PDF document.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case LineBoxes:
		return "LineBoxes"
	case HOCR:
		return "hOCR"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case LineBoxes:
		return ".json"
	case HOCR:
		return ".hocr"
	case PDF:
		return ".pdf"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return LineBoxes
	case ".hocr", ".html", ".htm", ".xhtml":
		return HOCR
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of the content to determine
// format. Returns Unknown if the format cannot be determined.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	// line box dumps are a JSON array of pages, or a single page object
	if data[0] == '[' || data[0] == '{' {
		return LineBoxes
	}

	if detectHOCRMagic(data) {
		return HOCR
	}

	return Unknown
}

// detectHOCRMagic checks if the data looks like an hOCR (HTML) document.
func detectHOCRMagic(data []byte) bool {
	upper := strings.ToUpper(string(data))
	if strings.Contains(upper, "OCR_PAGE") {
		return true
	}
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XHTML: XML declaration followed by html-like content
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}

// DetectFromReader reads the first bytes of r and detects the format from
// them.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
