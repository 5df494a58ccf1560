// Package web serves the embedded generator form: a settings sidebar, the
// CSV and logo uploads, preview thumbnails and the archive download link.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"stickr/internal/platform/config"
)

//go:embed index.html
var content embed.FS

type Handler struct {
	tmpl     *template.Template
	defaults config.StickersConfig
}

func NewHandler(defaults config.StickersConfig) (*Handler, error) {
	tmpl, err := template.ParseFS(content, "index.html")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl, defaults: defaults}, nil
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, h.defaults); err != nil {
		log.Error().Err(err).Msg("rendering form page")
	}
}
