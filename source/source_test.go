package source

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/model"
)

const lineBoxJSON = `[
  {
    "bbox": [0, 0, 612, 792],
    "tblocks": [
      {"lines": [
        {"bbox": [72, 72, 300, 84], "text": "A Title"},
        {"bbox": [72, 100, 290, 112], "text": "first line"}
      ]},
      {"lines": [{"bbox": [320, 100, 540, 112], "text": "right column"}]}
    ]
  },
  {"bbox": [0, 0, 612, 792], "tblocks": []}
]`

const hocrDoc = `<!DOCTYPE html>
<html><body>
<div class='ocr_page' id='page_1' title='bbox 0 0 2480 3508; ppageno 0'>
  <div class='ocr_carea'>
    <p class='ocr_par'>
      <span class='ocr_line' title='bbox 100 200 1100 260; baseline 0 -5'>
        <span class='ocrx_word' title='bbox 100 200 400 260'>Hello</span>
        <span class='ocrx_word' title='bbox 420 200 1100 260'>world</span>
      </span>
      <span class='ocr_header' title='bbox 100 100 900 150'>Chapter   One</span>
    </p>
  </div>
</div>
<div class='ocr_page' id='page_2' title='image "scan2.png"'>
  <span class='ocr_line' title='bbox 10 10 50 20'><span class='ocrx_word'>two</span></span>
</div>
</body></html>`

func TestReadLineBoxes(t *testing.T) {
	pages, err := ReadLineBoxes(strings.NewReader(lineBoxJSON))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, model.NewRect(0, 0, 612, 792), pages[0].BBox)
	require.Len(t, pages[0].Lines, 3)
	assert.Equal(t, "right column", pages[0].Lines[2].Text)
	assert.Equal(t, model.NewRect(320, 100, 540, 112), pages[0].Lines[2].BBox)

	assert.Equal(t, 2, pages[1].Number)
	assert.Empty(t, pages[1].Lines)
}

func TestReadLineBoxesSinglePage(t *testing.T) {
	pages, err := ReadLineBoxes(strings.NewReader(`{"bbox":[0,0,100,100],"tblocks":[{"lines":[{"bbox":[1,2,3,4],"text":"x"}]}]}`))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Lines, 1)
}

func TestReadLineBoxesInvalid(t *testing.T) {
	_, err := ReadLineBoxes(strings.NewReader(`[{"bbox": "wide"}]`))
	assert.Error(t, err)
}

func TestReadHOCR(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "scan2.png"), 640, 480)

	pages, err := ReadHOCR(context.Background(), strings.NewReader(hocrDoc), Options{ImageDir: dir})
	require.NoError(t, err)
	require.Len(t, pages, 2)

	first := pages[0]
	assert.Equal(t, model.NewRect(0, 0, 2480, 3508), first.BBox)
	require.Len(t, first.Lines, 2)
	assert.Equal(t, "Hello world", first.Lines[0].Text)
	assert.Equal(t, model.NewRect(100, 200, 1100, 260), first.Lines[0].BBox)
	assert.Equal(t, "Chapter One", first.Lines[1].Text)

	second := pages[1]
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, model.NewRect(0, 0, 640, 480), second.BBox)
	assert.Equal(t, "two", second.Lines[0].Text)
}

func TestReadHOCRMissingImage(t *testing.T) {
	pages, err := ReadHOCR(context.Background(), strings.NewReader(hocrDoc), Options{ImageDir: t.TempDir()})
	require.NoError(t, err)
	require.Len(t, pages, 2)

	// falls back to the bounding box of the lines
	assert.Equal(t, model.NewRect(10, 10, 50, 20), pages[1].BBox)
}

func TestImageBBoxRefusesOutsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scans")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writePNG(t, filepath.Join(root, "outside.png"), 1234, 4321)
	writePNG(t, filepath.Join(dir, "inside.png"), 640, 480)

	tests := []struct {
		name   string
		ref    string
		dir    string
		wantOK bool
	}{
		{"local file", "inside.png", dir, true},
		{"quoted local file", `"inside.png"`, dir, true},
		{"lookup disabled", "inside.png", "", false},
		{"absolute path", filepath.Join(root, "outside.png"), dir, false},
		{"parent directory", "../outside.png", dir, false},
		{"directory", "sub", dir, false},
		{"missing file", "nope.png", dir, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, ok := imageBBox(tt.ref, tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, model.NewRect(0, 0, 640, 480), rect)
			}
		})
	}
}

func TestOpenHOCRResolvesImagesNextToFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "scan2.png"), 640, 480)
	path := filepath.Join(dir, "scan.hocr")
	require.NoError(t, os.WriteFile(path, []byte(hocrDoc), 0o644))

	pages, err := Open(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, model.NewRect(0, 0, 640, 480), pages[1].BBox)

	// bytes read without an image dir never touch the filesystem
	pages, err = ReadBytes(context.Background(), []byte(hocrDoc), "scan.hocr", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, model.NewRect(10, 10, 50, 20), pages[1].BBox)
}

func TestReadHOCRCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadHOCR(ctx, strings.NewReader(hocrDoc), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTitleProps(t *testing.T) {
	doc := `<span title="bbox 1 2 3 4; image 'a b.png'; ppageno 7"></span>`
	pages, err := ReadHOCR(context.Background(), strings.NewReader(doc), Options{})
	require.NoError(t, err)
	assert.Empty(t, pages)

	rect, ok := parseBBox("1 2 3 4")
	assert.True(t, ok)
	assert.Equal(t, model.NewRect(1, 2, 3, 4), rect)

	_, ok = parseBBox("1 2 3")
	assert.False(t, ok)
	_, ok = parseBBox("1 2 3 x")
	assert.False(t, ok)
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	data := []byte(lineBoxJSON)

	pages, err := ReadBytes(ctx, data, "dump.json", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	_, err = ReadBytes(ctx, []byte("plain text"), "notes.txt", DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadBytes(ctx, []byte("[]"), "empty.json", DefaultOptions())
	assert.ErrorIs(t, err, ErrNoPages)

	_, err = Read(ctx, strings.NewReader("%PDF-garbage"), 12, format.PDF, DefaultOptions())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.json")
	require.NoError(t, os.WriteFile(path, []byte(lineBoxJSON), 0o644))

	pages, err := Open(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), DefaultOptions())
	assert.Error(t, err)
}

func TestSplitRow(t *testing.T) {
	row := pdf.TextHorizontal{
		{X: 150, W: 20, FontSize: 10, S: "c"},
		{X: 100, W: 20, FontSize: 10, S: "a"},
		{X: 122, W: 20, FontSize: 10, S: "b"},
		{X: 300, W: 20, FontSize: 10, S: "d"},
		{X: 400, W: 0, FontSize: 10, S: ""},
	}

	lines := splitRow(row, 1.0)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 3)
	assert.Equal(t, "d", lines[1][0].S)
}

func TestPDFLine(t *testing.T) {
	media := model.NewRect(0, 0, 612, 792)
	runs := []pdf.Text{
		{X: 72, Y: 700, W: 30, FontSize: 12, S: "Hel"},
		{X: 102, Y: 700, W: 20, FontSize: 12, S: "lo "},
	}

	bbox, text := pdfLine(runs, media)
	assert.Equal(t, "Hello", text)
	assert.Equal(t, model.NewRect(72, 80, 122, 92), bbox)
}

func TestMediaBoxDefault(t *testing.T) {
	assert.Equal(t, defaultMediaBox, mediaBox(pdf.Value{}))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}
