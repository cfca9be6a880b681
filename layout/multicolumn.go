package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/histogram"
	"github.com/tsawler/pagelayout/model"
)

// ClassifyGroups looks for a two-column split in every block group of ctx
// and confirms it with edge histograms. A group is confirmed when its
// MaxWeight ends up above 0.
func ClassifyGroups(ctx *Context, params Params) {
	for _, g := range ctx.Groups {
		classifyGroup(g, ctx.AlleyRange, params)
	}
}

func classifyGroup(g *BlockGroup, alleyRange model.Segment, params Params) {
	g.resetColumns()
	g.HasAlley = false

	if g.BBox.Height() < params.TwoColumnMinHeight {
		return
	}

	alley, ok := widestAlley(g.Rects, alleyRange)
	if !ok {
		return
	}
	g.AlleyMid = alley.Mid()

	if !(alley.Width() > params.MinAlleyWidth &&
		g.AlleyMid-g.BBox.Left > params.NarrowColumnWidth &&
		g.BBox.Right-g.AlleyMid > params.NarrowColumnWidth) {
		return
	}
	g.Alley = alley
	g.HasAlley = true

	g.Left = histogram.Build(g.Rects, params.LeftHistogramWindow, histogram.LeftEdge, 0)
	g.Left.Threshold(params.LeftCutoffRatio)
	g.Left.ExtractBlocks()

	g.Right = histogram.Build(g.Rects, params.RightHistogramWindow, histogram.RightEdge, params.RightLowPassWindow)
	g.Right.Threshold(params.RightCutoffRatio)
	g.Right.ExtractBlocks()

	g.MaxWeight = math.Max(g.Left.MaxBlockWeight(), g.Right.MaxBlockWeight())
	if g.MaxWeight < params.TwoColumnMinHeight {
		g.resetColumns()
	}
}

// widestAlley returns the widest interior X-cut of rects clipped to
// alleyRange. The outer cuts reaching -Inf and +Inf are margins, not
// gutters. Ties go to the leftmost cut.
func widestAlley(rects []model.Rect, alleyRange model.Segment) (model.Segment, bool) {
	cuts := ProjectAndCut(rects, model.AxisX, nil)

	var best model.Segment
	found := false
	for i := 1; i < len(cuts)-1; i++ {
		if !model.Overlaps(alleyRange, cuts[i]) {
			continue
		}
		c := model.Intersect(alleyRange, cuts[i])
		if c.Width() <= 0 {
			continue
		}
		if !found || c.Width() > best.Width() {
			best = c
			found = true
		}
	}
	return best, found
}

// SelectDoubleColumn returns the index of the confirmed group with the
// highest MaxWeight, or -1 when no group is confirmed. Ties go to the
// topmost group.
func SelectDoubleColumn(groups []*BlockGroup) int {
	selected := -1
	for i, g := range groups {
		if !g.IsDoubleColumn() {
			continue
		}
		if selected < 0 || g.MaxWeight > groups[selected].MaxWeight {
			selected = i
		}
	}
	return selected
}

// Partition assigns every rect of ctx to a region. Groups above the
// selected one go to HEAD and groups below it to FOOT. The selected group
// is split at its alley: a rect starting left of the alley's end is LEFT.
// Without a selected group everything is HEAD.
func Partition(ctx *Context) [4][]model.Rect {
	var members [4][]model.Rect

	if ctx.DoubleColumn < 0 {
		for _, g := range ctx.Groups {
			members[model.RegionHead] = append(members[model.RegionHead], g.Rects...)
		}
	} else {
		for i, g := range ctx.Groups {
			switch {
			case i < ctx.DoubleColumn:
				members[model.RegionHead] = append(members[model.RegionHead], g.Rects...)
			case i > ctx.DoubleColumn:
				members[model.RegionFoot] = append(members[model.RegionFoot], g.Rects...)
			default:
				for _, r := range g.Rects {
					if r.Left < g.Alley.End {
						members[model.RegionLeft] = append(members[model.RegionLeft], r)
					} else {
						members[model.RegionRight] = append(members[model.RegionRight], r)
					}
				}
			}
		}
	}

	for i := range members {
		model.SortRects(members[i])
	}
	return members
}

// FormatRegions lays the four regions out in docBBox. LEFT and RIGHT span
// the vertical extent of their members and meet at alleyMid; HEAD and FOOT
// take the full width above and below them. Without two columns LEFT and
// RIGHT collapse to zero height at the bottom of the page and meet at its
// horizontal center. Each region is sliced into rows at the bottom edges
// of its members.
func FormatRegions(members [4][]model.Rect, docBBox model.Rect, alleyMid float64) model.Regions {
	left := members[model.RegionLeft]
	right := members[model.RegionRight]

	var rangeY model.Segment
	alleyX := alleyMid
	if len(left) == 0 && len(right) == 0 {
		rangeY = model.Segment{Start: docBBox.Bottom, End: docBBox.Bottom}
		alleyX = 0.5 * (docBBox.Left + docBBox.Right)
	} else {
		lb := model.BoundingBox(left)
		rb := model.BoundingBox(right)
		rangeY = model.Segment{
			Start: math.Min(lb.Top, rb.Top),
			End:   math.Max(lb.Bottom, rb.Bottom),
		}
	}

	spans := [4]struct{ x, y model.Segment }{
		model.RegionHead:  {model.Segment{Start: docBBox.Left, End: docBBox.Right}, model.Segment{Start: docBBox.Top, End: rangeY.Start}},
		model.RegionLeft:  {model.Segment{Start: docBBox.Left, End: alleyX}, rangeY},
		model.RegionRight: {model.Segment{Start: alleyX, End: docBBox.Right}, rangeY},
		model.RegionFoot:  {model.Segment{Start: docBBox.Left, End: docBBox.Right}, model.Segment{Start: rangeY.End, End: docBBox.Bottom}},
	}

	var regions model.Regions
	for _, kind := range model.RegionKinds {
		rgn := regions.Get(kind)
		rects := members[kind]
		if len(rects) > 0 {
			bbox := model.BoundingBox(rects)
			rgn.TextColumnLeftEdge = bbox.Left
			rgn.TextColumnWidth = bbox.Width()
		}
		rgn.Rects = sliceRows(rects, spans[kind].x, spans[kind].y)
	}
	return regions
}

// sliceRows cuts span into rows at every member bottom strictly inside it.
// The result always has at least one row, which may have zero height.
func sliceRows(rects []model.Rect, x, span model.Segment) []model.Rect {
	pts := []float64{span.Start}
	var inner []float64
	for _, r := range rects {
		if span.Start < r.Bottom && r.Bottom < span.End {
			inner = append(inner, r.Bottom)
		}
	}
	sort.Float64s(inner)
	for _, p := range inner {
		if p != pts[len(pts)-1] {
			pts = append(pts, p)
		}
	}
	pts = append(pts, span.End)

	rows := make([]model.Rect, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		rows = append(rows, model.NewRect(x.Start, pts[i], x.End, pts[i+1]))
	}
	return rows
}

// MultiColumn classifies the groups of ctx, selects the two-column group
// and fills in ctx.DoubleColumn, ctx.Members and ctx.Regions.
func MultiColumn(ctx *Context, params Params) {
	ClassifyGroups(ctx, params)
	ctx.DoubleColumn = SelectDoubleColumn(ctx.Groups)
	ctx.Members = Partition(ctx)

	alleyMid := 0.0
	if ctx.DoubleColumn >= 0 {
		alleyMid = ctx.Groups[ctx.DoubleColumn].AlleyMid
	}
	ctx.Regions = FormatRegions(ctx.Members, ctx.DocBBox, alleyMid)
}
