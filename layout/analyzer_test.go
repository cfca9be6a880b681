package layout

import (
	"reflect"
	"testing"

	"github.com/tsawler/pagelayout/model"
)

func pageOf(rects []model.Rect) model.Page {
	page := model.NewPage(1, docBBox)
	for _, r := range rects {
		page.AddLine(r, "text")
	}
	return *page
}

func TestAnalyzeTwoColumns(t *testing.T) {
	rects := twoColumnRects(8)
	// four short lines inside the right column make 20 rects
	for k := 0; k < 4; k++ {
		top := 100 + 20*float64(k)
		rects = append(rects, model.NewRect(300, top+4, 400, top+10))
	}

	ctx := NewAnalyzer().Run(rects, docBBox)

	if ctx.DoubleColumn < 0 {
		t.Fatal("expected a two-column section")
	}
	if len(ctx.Members[model.RegionLeft]) != 8 {
		t.Errorf("expected 8 LEFT rects, got %d", len(ctx.Members[model.RegionLeft]))
	}
	if len(ctx.Members[model.RegionRight]) != 12 {
		t.Errorf("expected 12 RIGHT rects, got %d", len(ctx.Members[model.RegionRight]))
	}
	for _, r := range ctx.Members[model.RegionLeft] {
		if r.Left != 0 {
			t.Errorf("unexpected LEFT rect %v", r)
		}
	}
	if len(ctx.Members[model.RegionHead]) != 0 || len(ctx.Members[model.RegionFoot]) != 0 {
		t.Error("expected HEAD and FOOT to be empty")
	}
}

func TestAnalyzeSingleColumn(t *testing.T) {
	ctx := NewAnalyzer().Run(paragraphRects(10), docBBox)

	if ctx.DoubleColumn != -1 {
		t.Errorf("expected -1, got %d", ctx.DoubleColumn)
	}
	if len(ctx.Members[model.RegionHead]) != 10 {
		t.Errorf("expected all 10 rects in HEAD, got %d", len(ctx.Members[model.RegionHead]))
	}
	if len(ctx.Members[model.RegionFoot]) != 0 {
		t.Error("expected FOOT to be empty")
	}
}

func TestAnalyzeEmptyPage(t *testing.T) {
	result := NewAnalyzer().Analyze(*model.NewPage(3, docBBox))

	if result.DoubleColumn {
		t.Error("expected an empty page to be single column")
	}
	if result.Number != 3 || result.BBox != docBBox {
		t.Errorf("unexpected page header %d %v", result.Number, result.BBox)
	}
	if len(result.Regions.Head.Rects) != 1 || result.Regions.Head.Rects[0] != docBBox {
		t.Errorf("expected HEAD to cover the page, got %v", result.Regions.Head.Rects)
	}
}

func TestAnalyzePage(t *testing.T) {
	result := NewAnalyzer().Analyze(pageOf(twoColumnRects(8)))

	if !result.DoubleColumn {
		t.Error("expected DoubleColumn to be set")
	}
	if result.Regions.Left.TextColumnWidth != 200 {
		t.Errorf("expected LEFT width 200, got %v", result.Regions.Left.TextColumnWidth)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := NewAnalyzer()
	rects := headedTwoColumnRects()
	input := make([]model.Rect, len(rects))
	copy(input, rects)

	first := a.Run(rects, docBBox)
	second := a.Run(rects, docBBox)

	if !reflect.DeepEqual(first.Regions, second.Regions) {
		t.Error("expected identical regions on repeated runs")
	}
	if !reflect.DeepEqual(first.Members, second.Members) {
		t.Error("expected identical members on repeated runs")
	}
	if !reflect.DeepEqual(rects, input) {
		t.Error("Run should not modify its input")
	}
}

func TestAnalyzerParams(t *testing.T) {
	params := DefaultParams()
	params.TwoColumnMinHeight = 500

	a := NewAnalyzerWithParams(params)
	if a.Params().TwoColumnMinHeight != 500 {
		t.Errorf("expected custom params, got %+v", a.Params())
	}

	ctx := a.Run(twoColumnRects(8), docBBox)
	if ctx.DoubleColumn != -1 {
		t.Error("expected a raised minimum height to reject the columns")
	}
}
