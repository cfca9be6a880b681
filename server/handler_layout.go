package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tsawler/pagelayout/model"
)

// LayoutRequest is the body of POST /v1/layout: the line rects of one page
// already in the working coordinate space
type LayoutRequest struct {
	Page  int          `json:"page,omitempty"`
	BBox  *model.Rect  `json:"bbox"`
	Rects []model.Rect `json:"rects"`
}

func (h *Handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize))

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.BBox == nil {
		writeError(w, http.StatusBadRequest, errors.New("bbox is required"))
		return
	}

	ctx := h.analyzer.Run(req.Rects, *req.BBox)

	writeJson(w, &model.PageLayout{
		Number:       req.Page,
		BBox:         *req.BBox,
		Regions:      ctx.Regions,
		DoubleColumn: ctx.DoubleColumn >= 0,
	})
}
