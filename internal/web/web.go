// Package web holds the server-rendered HTML templates.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("02.01.2006")
	},
	"year": func() int { return time.Now().Year() },
}

// Templates parses every page template. Pages are addressed by file name,
// e.g. "public.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

// MustTemplates panics when the embedded templates do not parse.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
