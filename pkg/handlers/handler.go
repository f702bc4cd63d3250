package handlers

import (
	"html/template"
	"time"

	"event-site/pkg/config"
	"event-site/pkg/metrics"
	"event-site/pkg/services"
)

// Handler carries the dependencies shared by the API and page handlers.
type Handler struct {
	cfg     config.Config
	content *services.ContentManager
	metrics *metrics.Metrics
}

// New creates a Handler.
func New(cfg config.Config, content *services.ContentManager, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:     cfg,
		content: content,
		metrics: m,
	}
}

// TemplateFuncs are the helpers available to page templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Article bodies are rendered by goldmark and inserted verbatim.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"isodate": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
	}
}
