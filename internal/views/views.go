// Package views renders the site pages. Each page is an html/template file
// exposed as a templ.Component.
package views

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded assets, rooted above the static directory.
func Static() fs.FS { return staticFS }

// ErrTemplateNotFound is returned when rendering an unknown page or block.
var ErrTemplateNotFound = errors.New("views: template not found")

// Views holds one template set per page, each sharing the layout and the
// partials.
type Views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"add":  func(a, b int) int { return a + b },
}

// New parses the embedded templates.
func New() (*Views, error) {
	return parse(templateFS, "templates")
}

// MustNew is New that panics on error.
func MustNew() *Views {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func parse(fsys fs.FS, root string) (*Views, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(fsys, root+"/layout.html", root+"/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, root+"/pages/*.html")
	if err != nil {
		return nil, err
	}

	v := &Views{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", f, err)
		}
		v.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return v, nil
}

// Page renders page inside the layout.
func (v *Views) Page(page string, data PageData) templ.Component {
	return v.block(page, "layout", data)
}

// Content renders only the main content of page, for htmx navigation.
func (v *Views) Content(page string, data PageData) templ.Component {
	return v.block(page, "content", data)
}

// Partial renders a named block of page.
func (v *Views) Partial(page, block string, data PageData) templ.Component {
	return v.block(page, block, data)
}

func (v *Views) block(page, block string, data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		t, ok := v.pages[page]
		if !ok || t.Lookup(block) == nil {
			return fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, page, block)
		}
		return t.ExecuteTemplate(w, block, data)
	})
}
