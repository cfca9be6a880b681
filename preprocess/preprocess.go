package preprocess

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
)

// DefaultPageNumberRange is the height of the strip at the bottom of the
// text in which page numbers are looked for
const DefaultPageNumberRange = 80.0

// Options controls page preprocessing
type Options struct {
	// PageWidth is the width pages are rescaled to. Zero disables rescaling.
	// Default: layout.DefaultPageWidth
	PageWidth float64

	// PageNumberRange is the height of the bottom strip searched for page
	// numbers. Zero disables page number widening.
	// Default: 80
	PageNumberRange float64

	// Normalize applies NFKC normalization before classifying text
	// Default: true
	Normalize bool
}

// DefaultOptions returns the options matching layout.DefaultParams
func DefaultOptions() Options {
	return Options{
		PageWidth:       layout.DefaultPageWidth,
		PageNumberRange: DefaultPageNumberRange,
		Normalize:       true,
	}
}

// Page returns a copy of page prepared for layout analysis. It rescales the
// page to opts.PageWidth, drops lines that are blank or mostly not text,
// and widens isolated page numbers at the bottom of the text to the full
// text width so they form a footer line of their own.
func Page(page model.Page, opts Options) model.Page {
	out := *page.Clone()

	if opts.PageWidth > 0 {
		out = Rescale(out, opts.PageWidth)
	}
	out.Lines = FilterLines(out.Lines, opts.Normalize)
	if opts.PageNumberRange > 0 {
		WidenPageNumbers(out.Lines, opts.PageNumberRange, opts.Normalize)
	}
	return out
}

// Rescale scales the page bbox and every line box by width/bbox width
// about the top-left corner of the page. A page with no width is returned
// unchanged.
func Rescale(page model.Page, width float64) model.Page {
	w := page.BBox.Width()
	if w <= 0 {
		return page
	}

	s := width / w
	origin := model.Point{X: page.BBox.Left, Y: page.BBox.Top}

	out := page
	out.BBox = page.BBox.Scale(origin, s)
	out.Lines = make([]model.TextLine, len(page.Lines))
	for i, l := range page.Lines {
		out.Lines[i] = model.TextLine{BBox: l.BBox.Scale(origin, s), Text: l.Text}
	}
	return out
}

// FilterLines drops blank lines and lines where fewer than half of the
// characters are letters, digits, spaces, periods or commas.
func FilterLines(lines []model.TextLine, normalize bool) []model.TextLine {
	kept := make([]model.TextLine, 0, len(lines))
	for _, l := range lines {
		text := l.Text
		if normalize {
			text = norm.NFKC.String(text)
		}
		if strings.TrimSpace(text) == "" || !IsMostlyText(text) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// IsMostlyText reports whether at least half of the runes of s are ASCII
// letters, digits, spaces, periods or commas.
func IsMostlyText(s string) bool {
	n, text := 0, 0
	for _, r := range s {
		n++
		if isTextRune(r) {
			text++
		}
	}
	return 2*text >= n
}

func isTextRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == ',', r == ' ':
		return true
	}
	return false
}

// IsPageNumber reports whether s holds only digits and white space
func IsPageNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9') && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// WidenPageNumbers stretches page number lines to the horizontal extent of
// all lines. A line qualifies when its text is a number, it reaches into
// the bottom rangeY units of the text, and its box doubled about its center
// touches no other line. lines is modified in place.
func WidenPageNumbers(lines []model.TextLine, rangeY float64, normalize bool) {
	rects := make([]model.Rect, len(lines))
	for i, l := range lines {
		rects[i] = l.BBox
	}
	bbox := model.BoundingBox(rects)
	if bbox.IsEmpty() {
		return
	}
	strip := model.Segment{Start: bbox.Bottom - rangeY, End: bbox.Bottom}

	for i := range lines {
		text := lines[i].Text
		if normalize {
			text = norm.NFKC.String(text)
		}
		r := rects[i]
		if !IsPageNumber(text) || !model.Overlaps(strip, r.Span(model.AxisY)) {
			continue
		}

		c := r.Center()
		expanded := model.NewRect(c.X-r.Width(), c.Y-r.Height(), c.X+r.Width(), c.Y+r.Height())
		if len(model.OverlappingRects(expanded, rects)) != 1 {
			continue
		}

		lines[i].BBox.Left = bbox.Left
		lines[i].BBox.Right = bbox.Right
	}
}
