package layout

import "github.com/tsawler/pagelayout/model"

// Analyzer runs the full per-page analysis: XY-cut banding, the band
// grouping program, and the multi-column classifier. An Analyzer holds no
// per-page state and is safe for concurrent use.
type Analyzer struct {
	params Params
}

// NewAnalyzer creates an analyzer with DefaultParams
func NewAnalyzer() *Analyzer {
	return &Analyzer{params: DefaultParams()}
}

// NewAnalyzerWithParams creates an analyzer with custom tunables. The
// caller is expected to have checked them with Params.Validate.
func NewAnalyzerWithParams(params Params) *Analyzer {
	return &Analyzer{params: params}
}

// Params returns the tunables in use
func (a *Analyzer) Params() Params {
	return a.params
}

// Run analyzes the line rects of one page laid out in docBBox and returns
// the complete context. rects is not modified.
func (a *Analyzer) Run(rects []model.Rect, docBBox model.Rect) *Context {
	ctx := XYCut(rects, a.params)
	ctx.DocBBox = docBBox
	MultiColumn(ctx, a.params)
	return ctx
}

// Analyze returns the serializable layout of page
func (a *Analyzer) Analyze(page model.Page) *model.PageLayout {
	ctx := a.Run(page.Rects(), page.BBox)
	return &model.PageLayout{
		Number:       page.Number,
		BBox:         page.BBox,
		Regions:      ctx.Regions,
		DoubleColumn: ctx.DoubleColumn >= 0,
	}
}
