package source

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for page size lookup
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/net/html"

	"github.com/tsawler/pagelayout/model"
)

// hOCR classes that carry one line of text
var hocrLineClasses = map[string]bool{
	"ocr_line":      true,
	"ocr_header":    true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
	"ocrx_line":     true,
}

// ReadHOCR reads an hOCR document. Every ocr_page element becomes a page
// and every line-level element a text line. A page without a bbox in its
// title takes the size of its image, or the bounding box of its lines.
func ReadHOCR(ctx context.Context, r io.Reader, opts Options) ([]model.Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var pages []model.Page
	for _, n := range findByClass(doc, "ocr_page") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		props := titleProps(n)
		page := model.NewPage(len(pages)+1, model.Rect{})
		readHOCRLines(n, page)

		bbox, ok := parseBBox(props["bbox"])
		if !ok {
			bbox, ok = imageBBox(props["image"], opts.ImageDir)
		}
		if !ok {
			bbox = model.BoundingBox(page.Rects())
			if bbox.IsEmpty() {
				bbox = model.Rect{}
			}
		}
		page.BBox = bbox
		pages = append(pages, *page)
	}
	return pages, nil
}

func readHOCRLines(n *html.Node, page *model.Page) {
	if n.Type == html.ElementNode && hasLineClass(n) {
		if bbox, ok := parseBBox(titleProps(n)["bbox"]); ok {
			page.AddLine(bbox, lineText(n))
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		readHOCRLines(c, page)
	}
}

func hasLineClass(n *html.Node) bool {
	for _, class := range strings.Fields(getAttr(n, "class")) {
		if hocrLineClasses[class] {
			return true
		}
	}
	return false
}

// lineText joins the text of the ocrx_word elements of a line, or returns
// its whole text content when it has none.
func lineText(n *html.Node) string {
	words := findByClass(n, "ocrx_word")
	if len(words) == 0 {
		return strings.Join(strings.Fields(getTextContent(n)), " ")
	}

	parts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(getTextContent(w)); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func findByClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, c := range strings.Fields(getAttr(n, "class")) {
				if c == class {
					found = append(found, n)
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func getTextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// titleProps splits an hOCR title attribute into its properties:
//
//	title="bbox 0 0 2480 3508; image 'page1.png'; ppageno 0"
func titleProps(n *html.Node) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(getAttr(n, "title"), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, _ := strings.Cut(part, " ")
		props[key] = strings.TrimSpace(val)
	}
	return props
}

func parseBBox(s string) (model.Rect, bool) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return model.Rect{}, false
	}

	var v [4]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.Rect{}, false
		}
		v[i] = x
	}
	return model.NewRect(v[0], v[1], v[2], v[3]), true
}

// imageBBox returns [0, 0, width, height] of the referenced image file.
// Lookup is off when dir is empty, and references that are absolute or
// climb out of dir are refused.
func imageBBox(ref, dir string) (model.Rect, bool) {
	ref = strings.Trim(ref, `'"`)
	if ref == "" || dir == "" {
		return model.Rect{}, false
	}
	if !filepath.IsLocal(ref) {
		slog.Debug("hOCR page image outside image dir", "image", ref)
		return model.Rect{}, false
	}
	ref = filepath.Join(dir, ref)

	info, err := os.Stat(ref)
	if err != nil || !info.Mode().IsRegular() {
		slog.Debug("hOCR page image not found", "image", ref, "error", err)
		return model.Rect{}, false
	}

	f, err := os.Open(ref)
	if err != nil {
		slog.Debug("hOCR page image not found", "image", ref, "error", err)
		return model.Rect{}, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		slog.Debug("hOCR page image not decodable", "image", ref, "error", err)
		return model.Rect{}, false
	}
	return model.NewRect(0, 0, float64(cfg.Width), float64(cfg.Height)), true
}
