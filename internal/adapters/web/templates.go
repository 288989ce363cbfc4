package web

import (
	"embed"
	"html/template"

	"property-client/internal/adapters/viewfmt"
	"property-client/internal/core/domain"
)

//go:embed templates/*.html
var templateFiles embed.FS

type pageData struct {
	Model          PageModel
	RefreshSeconds int
}

type confirmData struct {
	ID     int64
	Prompt string
}

// parseTemplates разбирает встроенные шаблоны; html/template экранирует все значения
func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"number": viewfmt.Number,
		"bound":  domain.FormatBound,
	}
	return template.New("web").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}
