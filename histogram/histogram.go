package histogram

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
)

// Edge selects which vertical edge of a rectangle is projected
type Edge int

const (
	// LeftEdge projects rect.Left
	LeftEdge Edge = iota
	// RightEdge projects rect.Right
	RightEdge
)

// Bin is one breakpoint of the step function. The weight applies to the
// cell [P, next.P].
type Bin struct {
	P      float64
	Weight float64
}

// Block is a maximal run of cells at or above the cut threshold
type Block struct {
	Range  model.Segment
	Weight float64
}

// Histogram is a weighted step function over the real line. Its domain
// always starts at -Inf and ends at +Inf, both with weight 0, and
// breakpoints are strictly increasing.
type Histogram struct {
	// Data holds the breakpoints, sentinels included
	Data []Bin

	// CutThreshold is set by Threshold
	CutThreshold float64

	// Blocks is set by ExtractBlocks
	Blocks []Block
}

// New returns an empty histogram: the two sentinels only.
func New() *Histogram {
	return &Histogram{Data: sentinelDomain()}
}

func sentinelDomain() []Bin {
	return []Bin{
		{P: math.Inf(-1), Weight: 0},
		{P: math.Inf(1), Weight: 0},
	}
}

// Build projects one edge of every rect into a window of the given width
// centered on that edge and accumulates the rect heights as weight.
// A cell receives a rect's weight only when it overlaps the window on more
// than an end point, so cells bordering the window are not counted.
// When lowPassWindow > 0 the result is box-filtered with that cell width.
func Build(rects []model.Rect, window float64, edge Edge, lowPassWindow float64) *Histogram {
	type splat struct {
		seg    model.Segment
		weight float64
	}

	splats := make([]splat, len(rects))
	starts := make([]float64, len(rects))
	ends := make([]float64, len(rects))
	for i, r := range rects {
		e := r.Left
		if edge == RightEdge {
			e = r.Right
		}
		splats[i] = splat{
			seg:    model.Segment{Start: e - window*0.5, End: e + window*0.5},
			weight: r.Height(),
		}
		starts[i] = splats[i].seg.Start
		ends[i] = splats[i].seg.End
	}

	data := subslice(sentinelDomain(), starts)
	data = subslice(data, ends)

	for _, s := range splats {
		for j := 0; j < len(data)-1; j++ {
			cell := model.Segment{Start: data[j].P, End: data[j+1].P}
			if model.OverlapsExclusive(cell, s.seg) {
				data[j].Weight += s.weight
			}
		}
	}

	h := &Histogram{Data: data}
	if lowPassWindow > 0 {
		h.Data = lowPass(h.Data, lowPassWindow)
	}
	return h
}

// subslice returns a new domain with a breakpoint added at every cut point
// that falls strictly inside an existing cell. New breakpoints inherit the
// weight of the cell they split, so the step function is unchanged.
func subslice(data []Bin, cuts []float64) []Bin {
	pts := make([]float64, len(cuts))
	copy(pts, cuts)
	sort.Float64s(pts)

	out := make([]Bin, 0, len(data)+len(pts))
	k := 0
	for j := 0; j < len(data); j++ {
		out = append(out, data[j])
		if j == len(data)-1 {
			break
		}
		lo, hi := data[j].P, data[j+1].P
		for k < len(pts) && pts[k] <= lo {
			k++
		}
		for k < len(pts) && pts[k] < hi {
			if out[len(out)-1].P != pts[k] {
				out = append(out, Bin{P: pts[k], Weight: data[j].Weight})
			}
			k++
		}
	}
	return out
}

// lowPass resamples data into uniform cells of width w spanning the finite
// breakpoints. Each new cell holds the integral of the old function over
// the cell divided by w.
func lowPass(data []Bin, w float64) []Bin {
	if len(data) < 4 {
		return data
	}

	first := data[1].P
	last := data[len(data)-2].P
	n := int(math.Ceil((last-first)/w)) + 1

	cuts := make([]float64, n)
	for i := range cuts {
		cuts[i] = first + w*float64(i)
	}
	fine := subslice(data, cuts)

	resampled := make([]Bin, n)
	for i := range resampled {
		resampled[i] = Bin{P: cuts[i]}
	}

	j := 1
	for i := 0; i < n-1; i++ {
		for j < len(fine)-1 && fine[j].P < resampled[i+1].P {
			resampled[i].Weight += fine[j].Weight * (fine[j+1].P - fine[j].P)
			j++
		}
		resampled[i].Weight /= w
	}

	out := make([]Bin, 0, n+2)
	out = append(out, Bin{P: math.Inf(-1)})
	out = append(out, resampled...)
	out = append(out, Bin{P: math.Inf(1)})
	return out
}

// Weight returns the weight of cell i, or 0 outside the domain
func (h *Histogram) Weight(i int) float64 {
	if i < 0 || i >= len(h.Data) {
		return 0
	}
	return h.Data[i].Weight
}

// Mass returns the integral of the step function over its finite cells.
func (h *Histogram) Mass() float64 {
	sum := 0.0
	for i := 1; i < len(h.Data)-2; i++ {
		sum += h.Data[i].Weight * (h.Data[i+1].P - h.Data[i].P)
	}
	return sum
}

// Span returns the finite part of the domain. It is invalid when the
// histogram has no finite breakpoints.
func (h *Histogram) Span() model.Segment {
	if len(h.Data) < 3 {
		return model.Segment{Start: math.Inf(1), End: math.Inf(-1)}
	}
	return model.Segment{Start: h.Data[1].P, End: h.Data[len(h.Data)-2].P}
}

// Threshold sets CutThreshold to scale times the mean weight over the
// finite domain and returns it. A histogram with fewer than two finite
// breakpoints gets a threshold of 0.
func (h *Histogram) Threshold(scale float64) float64 {
	span := h.Span()
	if !span.Valid() || span.Width() <= 0 {
		h.CutThreshold = 0
		return 0
	}
	h.CutThreshold = scale * h.Mass() / span.Width()
	return h.CutThreshold
}

// ExtractBlocks scans consecutive cells against CutThreshold and records
// each run that rises to the threshold and falls below it again. A run
// keeps the largest cell weight it crosses, not the sum. A run still open
// when the scan ends is dropped.
func (h *Histogram) ExtractBlocks() []Block {
	var blocks []Block
	var cur Block
	open := false

	for i := 0; i < len(h.Data)-1; i++ {
		w0, w1 := h.Data[i].Weight, h.Data[i+1].Weight
		above0 := w0 >= h.CutThreshold
		above1 := w1 >= h.CutThreshold

		switch {
		case !above0 && above1:
			cur = Block{Range: model.Segment{Start: h.Data[i+1].P}, Weight: w1}
			open = true
		case above0 && above1:
			if open {
				cur.Weight = math.Max(cur.Weight, w1)
			}
		case above0 && !above1:
			if open {
				cur.Range.End = h.Data[i+1].P
				blocks = append(blocks, cur)
				open = false
			}
		}
	}

	h.Blocks = blocks
	return blocks
}

// MaxBlockWeight returns the largest block weight, or 0 without blocks
func (h *Histogram) MaxBlockWeight() float64 {
	max := 0.0
	for _, b := range h.Blocks {
		max = math.Max(max, b.Weight)
	}
	return max
}
