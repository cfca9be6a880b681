package layout

import "github.com/tsawler/pagelayout/model"

// Band is a maximal horizontal strip of lines: the rects between two
// consecutive Y-cuts.
type Band struct {
	// Index of the band, top to bottom
	Index int

	// Rects sorted top to bottom, then left to right
	Rects []model.Rect

	// Bounding box of Rects
	BBox model.Rect

	// Cuts are the band's X-cuts clipped to the page's alley range.
	// They are the candidate gutters of the band.
	Cuts []model.Segment
}

// Height returns the height of the band's bounding box
func (b *Band) Height() float64 {
	return b.BBox.Height()
}

// BandsFromCuts distributes rects over the gaps between consecutive
// Y-cuts. A rect joins the first band whose range [cut[i].End,
// cut[i+1].Start] contains its vertical extent, so every rect lands in
// exactly one band when ycuts come from ProjectAndCut over the same rects.
func BandsFromCuts(rects []model.Rect, ycuts []model.Segment) []*Band {
	visited := make([]bool, len(rects))

	var bands []*Band
	for i := 0; i < len(ycuts)-1; i++ {
		lo, hi := ycuts[i].End, ycuts[i+1].Start

		band := &Band{Index: len(bands)}
		for j, r := range rects {
			if !visited[j] && lo <= r.Top && r.Bottom <= hi {
				band.Rects = append(band.Rects, r)
				visited[j] = true
			}
		}
		if len(band.Rects) == 0 {
			continue
		}

		model.SortRects(band.Rects)
		band.BBox = model.BoundingBox(band.Rects)
		bands = append(bands, band)
	}
	return bands
}
