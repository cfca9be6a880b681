package model

// LayoutVersion is the version written into every Document record
const LayoutVersion = 6.0

// RegionKind names one of the four coarse regions of a page
type RegionKind int

const (
	// RegionHead is everything above the two-column section (or the whole
	// page when there is none)
	RegionHead RegionKind = iota
	// RegionLeft is the left column of the two-column section
	RegionLeft
	// RegionRight is the right column of the two-column section
	RegionRight
	// RegionFoot is everything below the two-column section
	RegionFoot
)

// RegionKinds lists the regions in top-to-bottom, left-to-right order
var RegionKinds = [4]RegionKind{RegionHead, RegionLeft, RegionRight, RegionFoot}

// String returns the wire name of the region
func (k RegionKind) String() string {
	switch k {
	case RegionHead:
		return "HEAD"
	case RegionLeft:
		return "LEFT"
	case RegionRight:
		return "RIGHT"
	case RegionFoot:
		return "FOOT"
	default:
		return "UNKNOWN"
	}
}

// Region is one region of the page layout.
// TextColumnLeftEdge and TextColumnWidth describe the horizontal extent of
// the text assigned to the region (both 0 when it has none). Rects are the
// row slices of the region: each spans the region's full horizontal range
// and consecutive rows are cut at the bottom edges of the member lines.
type Region struct {
	TextColumnLeftEdge float64 `json:"textColumnLeftEdge"`
	TextColumnWidth    float64 `json:"textColumnWidth"`
	Rects              []Rect  `json:"rects"`
}

// Regions holds the four regions of a page
type Regions struct {
	Head  Region `json:"HEAD"`
	Left  Region `json:"LEFT"`
	Right Region `json:"RIGHT"`
	Foot  Region `json:"FOOT"`
}

// Get returns a pointer to the region of the given kind
func (r *Regions) Get(kind RegionKind) *Region {
	switch kind {
	case RegionLeft:
		return &r.Left
	case RegionRight:
		return &r.Right
	case RegionFoot:
		return &r.Foot
	default:
		return &r.Head
	}
}

// PageLayout is the serializable layout result of one page
type PageLayout struct {
	Number       int     `json:"page,omitempty"`
	BBox         Rect    `json:"bbox"`
	Regions      Regions `json:"regions"`
	DoubleColumn bool    `json:"doubleColumn"`
}

// Document aggregates the page layouts of a whole document
type Document struct {
	ID      string        `json:"id,omitempty"`
	Version float64       `json:"version"`
	Pages   []*PageLayout `json:"pages"`
}

// NewDocument creates an empty document record
func NewDocument(id string) *Document {
	return &Document{
		ID:      id,
		Version: LayoutVersion,
		Pages:   make([]*PageLayout, 0),
	}
}

// AddPage appends a page layout
func (d *Document) AddPage(page *PageLayout) {
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page layout by number (1-indexed)
func (d *Document) GetPage(number int) *PageLayout {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// DoubleColumnPages returns the numbers of the pages with a two-column section
func (d *Document) DoubleColumnPages() []int {
	var pages []int
	for _, p := range d.Pages {
		if p.DoubleColumn {
			pages = append(pages, p.Number)
		}
	}
	return pages
}
