package layout

import (
	"math"

	"github.com/tsawler/pagelayout/model"
)

// MergeSegments sorts a copy of segments and merges overlapping ones
// (touching counts) into maximal runs.
func MergeSegments(segments []model.Segment) []model.Segment {
	sorted := make([]model.Segment, len(segments))
	copy(sorted, segments)
	model.SortSegments(sorted)

	var merged []model.Segment
	for _, s := range sorted {
		if n := len(merged); n > 0 && model.Overlaps(merged[n-1], s) {
			merged[n-1] = model.Hull(merged[n-1], s)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// MergeAndCut returns the cuts of segments: the gaps between their merged
// runs, starting at -Inf and ending at +Inf.
//
//	MergeAndCut([[0 1] [10 52] [49 100]], nil) == [[-Inf 0] [1 10] [100 +Inf]]
//
// When clip is non-nil every cut is intersected with it and cuts that do
// not overlap it are dropped.
func MergeAndCut(segments []model.Segment, clip *model.Segment) []model.Segment {
	merged := MergeSegments(segments)

	var cuts []model.Segment
	if len(merged) == 0 {
		cuts = []model.Segment{{Start: math.Inf(-1), End: math.Inf(1)}}
	} else {
		cuts = make([]model.Segment, 0, len(merged)+1)
		cuts = append(cuts, model.Segment{Start: math.Inf(-1), End: merged[0].Start})
		for i := 0; i < len(merged)-1; i++ {
			cuts = append(cuts, model.Segment{Start: merged[i].End, End: merged[i+1].Start})
		}
		cuts = append(cuts, model.Segment{Start: merged[len(merged)-1].End, End: math.Inf(1)})
	}

	if clip == nil {
		return cuts
	}
	return clipCuts(cuts, *clip)
}

func clipCuts(cuts []model.Segment, clip model.Segment) []model.Segment {
	clipped := make([]model.Segment, 0, len(cuts))
	for _, c := range cuts {
		if model.Overlaps(clip, c) {
			clipped = append(clipped, model.Intersect(clip, c))
		}
	}
	return clipped
}

// ProjectAndCut projects rects onto axis and returns the cuts of the
// projections. See MergeAndCut.
func ProjectAndCut(rects []model.Rect, axis model.Axis, clip *model.Segment) []model.Segment {
	segments := make([]model.Segment, len(rects))
	for i, r := range rects {
		segments[i] = r.Span(axis)
	}
	return MergeAndCut(segments, clip)
}

// CenterOfMass returns the area-weighted centroid of the rect centers.
// Rects of zero total area yield the origin.
func CenterOfMass(rects []model.Rect) model.Point {
	var x, y, sum float64
	for _, r := range rects {
		w := r.Area()
		c := r.Center()
		x += c.X * w
		y += c.Y * w
		sum += w
	}
	if sum == 0 {
		return model.Point{}
	}
	return model.Point{X: x / sum, Y: y / sum}
}

// AlleyRange returns the horizontal window in which a column gutter may
// lie: params.AlleyRangeWidth() wide, centered on the centroid of rects.
func AlleyRange(rects []model.Rect, params Params) model.Segment {
	x := CenterOfMass(rects).X
	half := params.AlleyRangeWidth() * 0.5
	return model.Segment{Start: x - half, End: x + half}
}
