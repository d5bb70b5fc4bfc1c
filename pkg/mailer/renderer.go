package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer turns markdown templates with YAML frontmatter into HTML wrapped
// in an html/template layout. Parsed templates and layouts are cached.
type Renderer struct {
	fs          fs.FS
	md          goldmark.Markdown
	funcs       texttemplate.FuncMap
	templateDir string
	layoutDir   string

	mu        sync.RWMutex
	templates map[string]*cachedTemplate
	layouts   map[string]*template.Template
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// RendererConfig configures a Renderer.
type RendererConfig struct {
	TemplateDir string // default "."
	LayoutDir   string // default "layouts"

	// Funcs are available to templates and subjects.
	Funcs texttemplate.FuncMap
}

// NewRenderer creates a Renderer with the default layout.
func NewRenderer(fsys fs.FS) *Renderer {
	return NewRendererWithConfig(fsys, RendererConfig{})
}

// NewRendererWithConfig creates a Renderer.
func NewRendererWithConfig(fsys fs.FS, cfg RendererConfig) *Renderer {
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	return &Renderer{
		fs:          fsys,
		md:          goldmark.New(goldmark.WithExtensions(NewButtonExtension())),
		funcs:       cfg.Funcs,
		templateDir: cfg.TemplateDir,
		layoutDir:   cfg.LayoutDir,
		templates:   make(map[string]*cachedTemplate),
		layouts:     make(map[string]*template.Template),
	}
}

// RenderResult is a rendered email body.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // executed markdown, before HTML conversion
}

// Render executes the named template with data, converts it to HTML and
// wraps it in layout. The layout receives .Content and .Metadata.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	ct, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := ct.tmpl.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, name, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%w: markdown %s: %v", ErrRenderFailed, name, err)
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(body.String()),
		"Metadata": ct.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{Metadata: ct.metadata, HTML: out.String(), Text: md.String()}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	ct, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return ct, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tmpl, err := texttemplate.New(name).Funcs(r.funcs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}
	ct = &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.templates[name]; ok {
		return existing, nil
	}
	r.templates[name] = ct
	return ct, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	lt, err = template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.layouts[name]; ok {
		return existing, nil
	}
	r.layouts[name] = lt
	return lt, nil
}
