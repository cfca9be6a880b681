package model

// TextLine is one extracted line of text with its bounding box
type TextLine struct {
	BBox Rect   `json:"bbox"`
	Text string `json:"text"`
}

// Page is the input to layout analysis: the page bounding box and its
// text lines, already in the working coordinate space.
type Page struct {
	Number int        // 1-indexed page number
	BBox   Rect       // Page bounding box [0, 0, width, height]
	Lines  []TextLine // Text lines in extraction order
}

// NewPage creates a page with the given bounding box
func NewPage(number int, bbox Rect) *Page {
	return &Page{
		Number: number,
		BBox:   bbox,
		Lines:  make([]TextLine, 0),
	}
}

// AddLine appends a text line to the page
func (p *Page) AddLine(bbox Rect, text string) {
	p.Lines = append(p.Lines, TextLine{BBox: bbox, Text: text})
}

// Rects returns the bounding boxes of the page's lines in order
func (p *Page) Rects() []Rect {
	rects := make([]Rect, len(p.Lines))
	for i, l := range p.Lines {
		rects[i] = l.BBox
	}
	return rects
}

// Width returns the page width
func (p *Page) Width() float64 {
	return p.BBox.Width()
}

// Height returns the page height
func (p *Page) Height() float64 {
	return p.BBox.Height()
}

// Clone returns a deep copy of the page
func (p *Page) Clone() *Page {
	c := &Page{
		Number: p.Number,
		BBox:   p.BBox,
		Lines:  make([]TextLine, len(p.Lines)),
	}
	copy(c.Lines, p.Lines)
	return c
}
