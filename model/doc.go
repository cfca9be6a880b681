// Package model provides the value types shared by every stage of page
// layout analysis.
//
// # Geometry
//
// [Rect] and [Segment] are plain values in page-local coordinates with y
// increasing downward:
//
//   - [Overlaps] and [OverlapsExclusive] test segment overlap with and
//     without touching end points
//   - [Intersect] and [Hull] combine segments; an intersection may be
//     invalid (Start > End), which means "no overlap"
//   - [BoundingBox] returns [EmptyBBox] for an empty input
//   - [SortRects] and [SortSegments] give the orders the cut and band
//     algorithms rely on
//
// Both types encode to JSON as flat arrays ([l, t, r, b] and [s, e]).
//
// # Pages
//
// A [Page] is the input to analysis: a page bounding box plus its
// [TextLine] values.
//
// # Layout Records
//
// A [PageLayout] carries the four [Region] values (HEAD, LEFT, RIGHT, FOOT)
// of a page, and a [Document] aggregates pages under [LayoutVersion]:
//
//	doc := model.NewDocument(id)
//	doc.AddPage(pageLayout)
package model
