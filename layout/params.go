package layout

import (
	"errors"
	"fmt"
)

// Tunables of the page layout analysis. Lengths are in the working
// coordinate space, where a page is DefaultPageWidth units wide.
const (
	DefaultPageWidth            = 500.0
	DefaultNarrowColumnWidth    = 150.0
	DefaultMinAlleyWidth        = 9.0
	DefaultTwoColumnMinHeight   = 50.0
	DefaultLeftHistogramWindow  = 9.0
	DefaultRightHistogramWindow = 27.0
	DefaultRightLowPassWindow   = 10.0
	DefaultLeftCutoffRatio      = 4.0
	DefaultRightCutoffRatio     = 1.5
)

// ErrInvalidParams is returned by Params.Validate
var ErrInvalidParams = errors.New("layout: invalid parameters")

// Params holds the numeric tunables read by the analysis
type Params struct {
	// PageWidth is the width of the working coordinate space.
	// Default: 500
	PageWidth float64

	// NarrowColumnWidth is the minimum width of either column of a
	// two-column section. Together with PageWidth it fixes the width of the
	// alley range.
	// Default: 150
	NarrowColumnWidth float64

	// MinAlleyWidth is the minimum width of a gutter between columns
	// Default: 9
	MinAlleyWidth float64

	// TwoColumnMinHeight is the minimum height of a block group considered
	// for two columns, and the minimum histogram peak that confirms it
	// Default: 50
	TwoColumnMinHeight float64

	// LeftHistogramWindow is the smear width of left edges
	// Default: 9
	LeftHistogramWindow float64

	// RightHistogramWindow is the smear width of right edges
	// Default: 27
	RightHistogramWindow float64

	// RightLowPassWindow is the resampling cell width of the right-edge
	// histogram. Zero disables resampling.
	// Default: 10
	RightLowPassWindow float64

	// LeftCutoffRatio scales the mean weight into the left threshold
	// Default: 4.0
	LeftCutoffRatio float64

	// RightCutoffRatio scales the mean weight into the right threshold
	// Default: 1.5
	RightCutoffRatio float64
}

// DefaultParams returns the tunables the analysis was calibrated with
func DefaultParams() Params {
	return Params{
		PageWidth:            DefaultPageWidth,
		NarrowColumnWidth:    DefaultNarrowColumnWidth,
		MinAlleyWidth:        DefaultMinAlleyWidth,
		TwoColumnMinHeight:   DefaultTwoColumnMinHeight,
		LeftHistogramWindow:  DefaultLeftHistogramWindow,
		RightHistogramWindow: DefaultRightHistogramWindow,
		RightLowPassWindow:   DefaultRightLowPassWindow,
		LeftCutoffRatio:      DefaultLeftCutoffRatio,
		RightCutoffRatio:     DefaultRightCutoffRatio,
	}
}

// AlleyRangeWidth returns PageWidth - 2*NarrowColumnWidth
func (p Params) AlleyRangeWidth() float64 {
	return p.PageWidth - 2.0*p.NarrowColumnWidth
}

// Validate checks that every tunable is in range
func (p Params) Validate() error {
	switch {
	case p.PageWidth <= 0:
		return fmt.Errorf("%w: page width must be positive, got %v", ErrInvalidParams, p.PageWidth)
	case p.NarrowColumnWidth < 0:
		return fmt.Errorf("%w: narrow column width must not be negative, got %v", ErrInvalidParams, p.NarrowColumnWidth)
	case p.AlleyRangeWidth() <= 0:
		return fmt.Errorf("%w: alley range width %v is not positive", ErrInvalidParams, p.AlleyRangeWidth())
	case p.MinAlleyWidth < 0:
		return fmt.Errorf("%w: min alley width must not be negative, got %v", ErrInvalidParams, p.MinAlleyWidth)
	case p.TwoColumnMinHeight < 0:
		return fmt.Errorf("%w: two column min height must not be negative, got %v", ErrInvalidParams, p.TwoColumnMinHeight)
	case p.LeftHistogramWindow <= 0 || p.RightHistogramWindow <= 0:
		return fmt.Errorf("%w: histogram windows must be positive", ErrInvalidParams)
	case p.RightLowPassWindow < 0:
		return fmt.Errorf("%w: low-pass window must not be negative, got %v", ErrInvalidParams, p.RightLowPassWindow)
	case p.LeftCutoffRatio <= 0 || p.RightCutoffRatio <= 0:
		return fmt.Errorf("%w: cutoff ratios must be positive", ErrInvalidParams)
	}
	return nil
}
