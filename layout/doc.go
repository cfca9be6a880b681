// Package layout recovers the coarse reading structure of a page from the
// bounding boxes of its text lines: a header, a footer and at most one
// two-column section split by a vertical gutter (the alley).
//
// # Analysis
//
// The [Analyzer] runs the whole pipeline on one page:
//
//	analyzer := layout.NewAnalyzer()
//	result := analyzer.Analyze(page)
//
// [Analyzer.Run] returns the full [Context] instead, for callers that want
// the intermediate bands and groups.
//
// # XY-Cut
//
// Line rects are projected onto the vertical axis and cut at the gaps
// ([ProjectAndCut]) into [Band] values. Each band keeps its own horizontal
// cuts, clipped to an [AlleyRange] centered on the page's text mass.
// [XYCut] then chooses which runs of contiguous bands share a consistent
// gutter by maximizing a score over cut sequences, and collapses the best
// path into [BlockGroup] values.
//
// # Columns
//
// [MultiColumn] accepts a group as two columns when its widest gutter is
// wide enough and both sides are at least a narrow column wide, and when
// the left or right edge histogram of the group shows a tall enough peak.
// The highest peak wins. The page is then partitioned into the four
// [model.RegionKind] regions.
//
// # Configuration
//
// All tunables live in [Params]:
//
//	params := layout.DefaultParams()
//	params.MinAlleyWidth = 12
//	if err := params.Validate(); err != nil {
//		return err
//	}
//	analyzer := layout.NewAnalyzerWithParams(params)
package layout
