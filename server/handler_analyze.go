package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tsawler/pagelayout"
	"github.com/tsawler/pagelayout/source"
)

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, err := readFile(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	selection, err := valuePages(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pages, err := source.ReadBytes(r.Context(), file.Content, file.Name, h.Source)

	if err != nil {
		if errors.Is(err, source.ErrUnsupportedFormat) {
			writeError(w, http.StatusUnsupportedMediaType, err)
			return
		}

		writeError(w, http.StatusBadRequest, err)
		return
	}

	e := pagelayout.FromPages(pages).
		Pages(selection...).
		Workers(h.Workers).
		WithParams(h.Params).
		WithPreprocess(h.Preprocess)

	if h.SkipPreprocess {
		e = e.SkipPreprocess()
	}

	doc, warnings, err := e.Document(r.Context())

	if err != nil {
		if errors.Is(err, pagelayout.ErrPageOutOfRange) {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	for _, warning := range warnings {
		slog.WarnContext(r.Context(), "analyze warning", "file", file.Name, "page", warning.Page, "message", warning.Message)
	}

	writeJson(w, doc)
}
