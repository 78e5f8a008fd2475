// Package view wires html/template pages into Echo's Renderer interface.
// The pages are embedded so the binary serves them without a templates
// directory on disk.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Renderer implements echo.Renderer over the embedded pages.
type Renderer struct {
	templates *template.Template
}

// New parses all embedded pages.  The "money" helper formats integer
// cents as a two-decimal amount for display.
func New() (*Renderer, error) {
	t := template.New("").Funcs(template.FuncMap{
		"money": func(cents int64) string {
			return fmt.Sprintf("%d.%02d", cents/100, cents%100)
		},
	})
	t, err := t.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
