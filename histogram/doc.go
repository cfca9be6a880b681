// Package histogram implements the weighted step functions used to
// corroborate a two-column split.
//
// A [Histogram] is built from one vertical edge (left or right) of a set of
// line rectangles. Every edge is smeared into a window of fixed width and
// weighted by the line height, so a column of left-aligned lines produces a
// tall narrow peak at the column's left margin:
//
//	h := histogram.Build(rects, 9, histogram.LeftEdge, 0)
//	h.Threshold(4.0)
//	h.ExtractBlocks()
//	peak := h.MaxBlockWeight()
//
// # Domain
//
// The domain is an ordered list of [Bin] breakpoints bounded by -Inf and
// +Inf sentinels of weight 0. Operations that refine or resample the
// domain return a new slice and never splice the existing one.
//
// # Thresholding
//
// [Histogram.Threshold] scales the mean weight of the finite domain and
// [Histogram.ExtractBlocks] reports the runs of cells at or above it. A
// block's weight is the maximum cell weight in the run.
package histogram
