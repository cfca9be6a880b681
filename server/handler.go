package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tsawler/pagelayout/config"
	"github.com/tsawler/pagelayout/layout"
)

type Handler struct {
	*config.Config

	analyzer *layout.Analyzer
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		analyzer: layout.NewAnalyzerWithParams(cfg.Params),
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/layout", h.handleLayout)
	r.Post("/analyze", h.handleAnalyze)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
