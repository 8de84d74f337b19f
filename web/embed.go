// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates parses every page and partial with funcs available.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.tmpl", "templates/partials/*.tmpl")
}

// Static returns the assets served under /static/.
func Static() (fs.FS, error) {
	return fs.Sub(files, "static")
}
