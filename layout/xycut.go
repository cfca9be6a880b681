package layout

import (
	"math"

	"github.com/tsawler/pagelayout/histogram"
	"github.com/tsawler/pagelayout/model"
)

// BlockGroup is a run of contiguous bands that share one vertical split,
// or a single band that shares none.
type BlockGroup struct {
	// Bands are the indices of the member bands, top to bottom
	Bands []int

	// Rects of all member bands in band order
	Rects []model.Rect

	// Bounding box of Rects
	BBox model.Rect

	// Alley is the accepted gutter. Valid only when HasAlley is true.
	Alley    model.Segment
	HasAlley bool

	// AlleyMid is the midpoint of the widest candidate gutter, or 0
	AlleyMid float64

	// Left and Right are the edge histograms that corroborate the alley.
	// Both are nil for a group without two columns.
	Left  *histogram.Histogram
	Right *histogram.Histogram

	// MaxWeight is the highest block weight over Left and Right, or 0
	MaxWeight float64
}

// IsDoubleColumn reports whether the group was confirmed as two columns
func (g *BlockGroup) IsDoubleColumn() bool {
	return g.MaxWeight > 0
}

func (g *BlockGroup) resetColumns() {
	g.Left = nil
	g.Right = nil
	g.MaxWeight = 0
}

// Context is the complete per-page analysis state
type Context struct {
	// Rects is a sorted copy of the input
	Rects []model.Rect

	// BBox is the bounding box of Rects (EmptyBBox for no rects)
	BBox model.Rect

	// DocBBox is the page bounding box the regions are laid out in
	DocBBox model.Rect

	// YCuts are the page-level cuts along the vertical axis
	YCuts []model.Segment

	// Bands in top to bottom order
	Bands []*Band

	// AlleyRange is the window candidate gutters are clipped to
	AlleyRange model.Segment

	// Groups in top to bottom order
	Groups []*BlockGroup

	// DoubleColumn is the index of the selected two-column group, or -1
	DoubleColumn int

	// Members are the rects assigned to each region, indexed by
	// model.RegionKind
	Members [4][]model.Rect

	// Regions is the formatted result
	Regions model.Regions
}

// XYCut decomposes rects into bands and groups contiguous bands that share
// a consistent vertical split. Empty input yields a context with no bands.
func XYCut(rects []model.Rect, params Params) *Context {
	ctx := &Context{
		Rects:        make([]model.Rect, len(rects)),
		DoubleColumn: -1,
	}
	copy(ctx.Rects, rects)
	model.SortRects(ctx.Rects)
	ctx.BBox = model.BoundingBox(ctx.Rects)

	ctx.YCuts = ProjectAndCut(ctx.Rects, model.AxisY, nil)
	ctx.Bands = BandsFromCuts(ctx.Rects, ctx.YCuts)
	if len(ctx.Bands) == 0 {
		return ctx
	}

	ctx.AlleyRange = AlleyRange(ctx.Rects, params)
	for _, b := range ctx.Bands {
		b.Cuts = ProjectAndCut(b.Rects, model.AxisX, &ctx.AlleyRange)
	}

	s := newSolver(ctx.Bands, ctx.BBox.Height(), params.MinAlleyWidth)
	s.score(0, noShare)

	for _, members := range s.groups() {
		g := &BlockGroup{Bands: members}
		for _, i := range members {
			g.Rects = append(g.Rects, ctx.Bands[i].Rects...)
		}
		g.BBox = model.BoundingBox(g.Rects)
		ctx.Groups = append(ctx.Groups, g)
	}
	return ctx
}

// seqID identifies an interned cut sequence. A sequence is a chain of
// (band, cut) choices, one per consecutive band, that inherit a common
// vertical split.
type seqID int

// noShare is the empty sequence: no split is inherited.
const noShare seqID = 0

type seqKey struct {
	parent    seqID
	band, cut int
}

type cutSeq struct {
	parent    seqID
	band, cut int
	length    int

	// cascade is the intersection of every cut in the chain
	cascade model.Segment
}

// solver maximizes the total score of bands sharing a split. score(i, seq)
// is the best score of bands i..n-1 given that the bands above ended with
// seq.
type solver struct {
	bands         []*Band
	bboxHeight    float64
	minAlleyWidth float64

	seqs  []cutSeq
	index map[seqKey]seqID

	memo  []map[seqID]float64
	order [][]seqID
}

func newSolver(bands []*Band, bboxHeight, minAlleyWidth float64) *solver {
	s := &solver{
		bands:         bands,
		bboxHeight:    bboxHeight,
		minAlleyWidth: minAlleyWidth,
		seqs:          []cutSeq{{}},
		index:         make(map[seqKey]seqID),
		memo:          make([]map[seqID]float64, len(bands)),
		order:         make([][]seqID, len(bands)),
	}
	for i := range s.memo {
		s.memo[i] = make(map[seqID]float64)
	}
	return s
}

// extend interns the sequence parent ++ (band, cut)
func (s *solver) extend(parent seqID, band, cut int) seqID {
	key := seqKey{parent: parent, band: band, cut: cut}
	if id, ok := s.index[key]; ok {
		return id
	}

	c := s.bands[band].Cuts[cut]
	seq := cutSeq{parent: parent, band: band, cut: cut, length: 1, cascade: c}
	if parent != noShare {
		p := s.seqs[parent]
		seq.length = p.length + 1
		seq.cascade = model.Intersect(c, p.cascade)
	}

	id := seqID(len(s.seqs))
	s.seqs = append(s.seqs, seq)
	s.index[key] = id
	return id
}

func (s *solver) score(i int, id seqID) float64 {
	if i >= len(s.bands) {
		return 0
	}
	if v, ok := s.memo[i][id]; ok {
		return v
	}

	band := s.bands[i]
	score := 0.0
	if id == noShare {
		score = s.score(i+1, noShare)
		for j := range band.Cuts {
			v := s.score(i+1, s.extend(noShare, i, j))
			if v > 0 {
				v += band.Height()
			}
			score = math.Max(score, v)
		}
	} else if s.canContinue(i, id) {
		score = s.score(i+1, noShare)
		cascade := s.seqs[id].cascade
		for j, c := range band.Cuts {
			if model.Overlaps(cascade, c) {
				score = math.Max(score, s.score(i+1, s.extend(id, i, j)))
			}
		}
		score += s.bboxHeight - s.gap(i-1, i) + band.Height()
	}

	s.memo[i][id] = score
	s.order[i] = append(s.order[i], id)
	return score
}

// canContinue reports whether band i can inherit the split of seq: the
// cascade must be valid, overlap one of the band's cuts, and leave a gutter
// of at least minAlleyWidth with the widest of them.
func (s *solver) canContinue(i int, id seqID) bool {
	cascade := s.seqs[id].cascade
	if !cascade.Valid() {
		return false
	}

	overlapping := false
	widest := model.Segment{Start: math.Inf(1), End: math.Inf(-1)}
	for _, c := range s.bands[i].Cuts {
		if model.Overlaps(cascade, c) {
			overlapping = true
		}
		if x := model.Intersect(cascade, c); x.Width() > widest.Width() {
			widest = x
		}
	}
	if !overlapping {
		return false
	}
	return !(widest.End < widest.Start+s.minAlleyWidth)
}

// gap returns the vertical distance from the bottom of band a to the top
// of band b
func (s *solver) gap(a, b int) float64 {
	return s.bands[b].BBox.Top - s.bands[a].BBox.Bottom
}

// groups walks the memo table top down and collapses the optimal path into
// runs of bands. At each band the candidates are the memoized sequences
// that continue a sequence chosen for the band above; the best of them are
// kept, or noShare when none scores above 0.
func (s *solver) groups() [][]int {
	n := len(s.bands)
	if n == 0 {
		return nil
	}

	optimal := make([][]seqID, n)
	optimal[0] = []seqID{noShare}
	for i := 1; i < n; i++ {
		prev := optimal[i-1]

		var candidates []seqID
		for _, id := range s.order[i] {
			switch {
			case id == noShare:
				candidates = append(candidates, id)
			case s.seqs[id].length == 1:
				if containsSeq(prev, noShare) {
					candidates = append(candidates, id)
				}
			default:
				if containsSeq(prev, s.seqs[id].parent) {
					candidates = append(candidates, id)
				}
			}
		}

		high := 0.0
		for _, id := range candidates {
			high = math.Max(high, s.memo[i][id])
		}
		if high == 0 {
			optimal[i] = []seqID{noShare}
			continue
		}
		for _, id := range candidates {
			if s.memo[i][id] == high {
				optimal[i] = append(optimal[i], id)
			}
		}
	}

	var groups [][]int
	current := noShare
	for i := 0; i < n; i++ {
		if containsSeq(optimal[i], noShare) {
			groups = append(groups, []int{i})
			current = noShare
			continue
		}

		matched := false
		for _, id := range optimal[i] {
			if s.seqs[id].parent == current {
				last := len(groups) - 1
				groups[last] = append(groups[last], i)
				current = id
				matched = true
				break
			}
		}
		if !matched {
			// a band never leaves the partition
			groups = append(groups, []int{i})
			current = noShare
		}
	}
	return groups
}

func containsSeq(ids []seqID, id seqID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
