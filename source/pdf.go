package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagelayout/model"
)

// US Letter, used when a page has no readable MediaBox
var defaultMediaBox = model.NewRect(0, 0, 612, 792)

// ReadPDF reads the text lines of every page of a PDF. Text runs of a row
// are split into separate lines at horizontal gaps wider than
// opts.RowGapRatio times the font size. Coordinates are converted to y
// increasing downward.
func ReadPDF(ctx context.Context, r io.ReaderAt, size int64, opts Options) ([]model.Page, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	gapRatio := opts.RowGapRatio
	if gapRatio <= 0 {
		gapRatio = DefaultRowGapRatio
	}

	n := reader.NumPage()
	pages := make([]model.Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := readPDFPage(reader.Page(i), i, gapRatio)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func readPDFPage(p pdf.Page, number int, gapRatio float64) (page model.Page, err error) {
	// the PDF reader panics on malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	media := mediaBox(p.V)
	out := model.NewPage(number, model.NewRect(0, 0, media.Width(), media.Height()))
	if p.V.IsNull() {
		return *out, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return model.Page{}, err
	}

	for _, row := range rows {
		for _, line := range splitRow(row.Content, gapRatio) {
			bbox, text := pdfLine(line, media)
			if text != "" {
				out.AddLine(bbox, text)
			}
		}
	}
	slog.Debug("read PDF page", "page", number, "lines", len(out.Lines))
	return *out, nil
}

// mediaBox returns the page MediaBox in PDF space (y up, so Top holds the
// lower edge and Bottom the upper one), following the page tree for
// inherited boxes
func mediaBox(v pdf.Value) model.Rect {
	for i := 0; i < 16 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
			urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
			r := model.NewRect(math.Min(llx, urx), math.Min(lly, ury), math.Max(llx, urx), math.Max(lly, ury))
			if r.Width() > 0 && r.Height() > 0 {
				return r
			}
		}
		v = v.Key("Parent")
	}
	return defaultMediaBox
}

// splitRow sorts the runs of a row left to right and splits them at gaps
// wider than gapRatio times the larger font size of the pair
func splitRow(texts pdf.TextHorizontal, gapRatio float64) [][]pdf.Text {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" || t.S == " " {
			runs = append(runs, t)
		}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var lines [][]pdf.Text
	var cur []pdf.Text
	for _, t := range runs {
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			gap := t.X - (prev.X + prev.W)
			if gap > gapRatio*math.Max(prev.FontSize, t.FontSize) {
				lines = append(lines, cur)
				cur = nil
			}
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// pdfLine returns the y-down bounding box and the text of a line. The box
// spans from the baseline up by the largest font size.
func pdfLine(runs []pdf.Text, media model.Rect) (model.Rect, string) {
	bbox := model.EmptyBBox()
	var b strings.Builder
	for _, t := range runs {
		top := media.Bottom - (t.Y + t.FontSize)
		bottom := media.Bottom - t.Y
		bbox.Left = math.Min(bbox.Left, t.X-media.Left)
		bbox.Right = math.Max(bbox.Right, t.X+t.W-media.Left)
		bbox.Top = math.Min(bbox.Top, top)
		bbox.Bottom = math.Max(bbox.Bottom, bottom)
		b.WriteString(t.S)
	}
	return bbox, strings.TrimSpace(b.String())
}
