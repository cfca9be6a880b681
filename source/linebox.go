package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/pagelayout/model"
)

// lineBoxPage is one page of a line box dump:
//
//	{"bbox": [0, 0, 612, 792], "tblocks": [{"lines": [{"bbox": [...], "text": "..."}]}]}
type lineBoxPage struct {
	BBox    model.Rect `json:"bbox"`
	TBlocks []struct {
		Lines []model.TextLine `json:"lines"`
	} `json:"tblocks"`
}

// ReadLineBoxes reads a JSON line box dump: an array of pages, or a single
// page object. Pages are numbered from 1 in order.
func ReadLineBoxes(r io.Reader) ([]model.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading line boxes: %w", err)
	}

	var raw []lineBoxPage
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single lineBoxPage
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("parsing line boxes: %w", err)
		}
		raw = append(raw, single)
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parsing line boxes: %w", err)
	}

	pages := make([]model.Page, 0, len(raw))
	for i, p := range raw {
		page := model.NewPage(i+1, p.BBox)
		for _, block := range p.TBlocks {
			page.Lines = append(page.Lines, block.Lines...)
		}
		pages = append(pages, *page)
	}
	return pages, nil
}
