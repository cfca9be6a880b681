package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Axis selects the horizontal or vertical projection of a rectangle
type Axis int

const (
	// AxisX projects a rectangle onto [Left, Right]
	AxisX Axis = iota
	// AxisY projects a rectangle onto [Top, Bottom]
	AxisY
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Segment is a closed interval [Start, End] on one axis.
// A segment with Start > End is invalid and signals "no region"; it is
// never an error value.
type Segment struct {
	Start float64
	End   float64
}

// NewSegment creates a segment from its end points
func NewSegment(start, end float64) Segment {
	return Segment{Start: start, End: end}
}

// Width returns End - Start (negative for an invalid segment)
func (s Segment) Width() float64 {
	return s.End - s.Start
}

// Mid returns the midpoint of the segment
func (s Segment) Mid() float64 {
	return 0.5 * (s.Start + s.End)
}

// Valid returns true if Start <= End
func (s Segment) Valid() bool {
	return s.Start <= s.End
}

// Overlaps reports whether two segments overlap. Touching end points count.
//
//	Overlaps([0, 2], [1, 3]) == true
//	Overlaps([0, 2], [2, 4]) == true
//	Overlaps([0, 2], [4, 6]) == false
func Overlaps(a, b Segment) bool {
	return !(a.Start > b.End || b.Start > a.End)
}

// OverlapsExclusive reports whether two segments overlap on more than an
// end point: OverlapsExclusive([0, 1], [1, 2]) == false.
func OverlapsExclusive(a, b Segment) bool {
	return !(a.Start >= b.End || b.Start >= a.End)
}

// Intersect returns [max(starts), min(ends)]. The result is invalid when the
// segments are disjoint.
func Intersect(a, b Segment) Segment {
	return Segment{
		Start: math.Max(a.Start, b.Start),
		End:   math.Min(a.End, b.End),
	}
}

// Hull returns the smallest segment covering both a and b
func Hull(a, b Segment) Segment {
	return Segment{
		Start: math.Min(a.Start, b.Start),
		End:   math.Max(a.End, b.End),
	}
}

// SortSegments sorts segments by start, then end.
func SortSegments(segments []Segment) {
	sort.SliceStable(segments, func(i, j int) bool {
		if segments[i].Start != segments[j].Start {
			return segments[i].Start < segments[j].Start
		}
		return segments[i].End < segments[j].End
	})
}

// MarshalJSON encodes the segment as [start, end]
func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.Start, s.End})
}

// UnmarshalJSON decodes a segment from [start, end]
func (s *Segment) UnmarshalJSON(data []byte) error {
	var v [2]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("segment: %w", err)
	}
	s.Start, s.End = v[0], v[1]
	return nil
}

// Rect is an axis-aligned rectangle in page-local coordinates with y
// increasing downward. Rects are plain values with no identity beyond
// their coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewRect creates a rectangle from its edges
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// EmptyBBox returns the degenerate box [+Inf, +Inf, -Inf, -Inf], the
// bounding box of no geometry.
func EmptyBBox() Rect {
	return Rect{
		Left:   math.Inf(1),
		Top:    math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(-1),
	}
}

// IsEmpty returns true for a box that covers no geometry (Left > Right or
// Top > Bottom), including the result of EmptyBBox.
func (r Rect) IsEmpty() bool {
	return r.Left > r.Right || r.Top > r.Bottom
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Area returns Width * Height
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.Left + r.Right),
		Y: 0.5 * (r.Top + r.Bottom),
	}
}

// Span projects the rectangle onto an axis
func (r Rect) Span(axis Axis) Segment {
	if axis == AxisY {
		return Segment{Start: r.Top, End: r.Bottom}
	}
	return Segment{Start: r.Left, End: r.Right}
}

// Scale multiplies every coordinate by s about the given origin
func (r Rect) Scale(origin Point, s float64) Rect {
	return Rect{
		Left:   origin.X + (r.Left-origin.X)*s,
		Top:    origin.Y + (r.Top-origin.Y)*s,
		Right:  origin.X + (r.Right-origin.X)*s,
		Bottom: origin.Y + (r.Bottom-origin.Y)*s,
	}
}

// RectsOverlap reports whether both axis projections overlap (inclusive).
func RectsOverlap(a, b Rect) bool {
	return Overlaps(a.Span(AxisX), b.Span(AxisX)) &&
		Overlaps(a.Span(AxisY), b.Span(AxisY))
}

// OverlappingRects returns the rects in rects that overlap r
func OverlappingRects(r Rect, rects []Rect) []Rect {
	var out []Rect
	for _, other := range rects {
		if RectsOverlap(r, other) {
			out = append(out, other)
		}
	}
	return out
}

// BoundingBox returns the componentwise min/max of rects. For an empty
// input it returns EmptyBBox; callers must check IsEmpty before using it.
func BoundingBox(rects []Rect) Rect {
	bbox := EmptyBBox()
	for _, r := range rects {
		bbox.Left = math.Min(bbox.Left, r.Left)
		bbox.Top = math.Min(bbox.Top, r.Top)
		bbox.Right = math.Max(bbox.Right, r.Right)
		bbox.Bottom = math.Max(bbox.Bottom, r.Bottom)
	}
	return bbox
}

// SortRects sorts rects top to bottom, then left to right.
func SortRects(rects []Rect) {
	sort.SliceStable(rects, func(i, j int) bool {
		if rects[i].Top != rects[j].Top {
			return rects[i].Top < rects[j].Top
		}
		return rects[i].Left < rects[j].Left
	})
}

// MarshalJSON encodes the rectangle as [left, top, right, bottom]
func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{r.Left, r.Top, r.Right, r.Bottom})
}

// UnmarshalJSON decodes a rectangle from [left, top, right, bottom]
func (r *Rect) UnmarshalJSON(data []byte) error {
	var v [4]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("rect: %w", err)
	}
	r.Left, r.Top, r.Right, r.Bottom = v[0], v[1], v[2], v[3]
	return nil
}
