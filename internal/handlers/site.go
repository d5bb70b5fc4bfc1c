// Package handlers declares the site routes. Every page lives under a
// locale prefix, as in /fr/contact.
package handlers

import (
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/jordanlepera/essencek"
	"github.com/jordanlepera/essencek/internal/views"
	"github.com/jordanlepera/essencek/middlewares"
)

// Site holds what every page needs to render.
type Site struct {
	views     *views.Views
	baseURL   string
	languages []string
}

// NewSite creates a Site. The first language is the default.
func NewSite(v *views.Views, baseURL string, languages []string) *Site {
	if v == nil || len(languages) == 0 {
		panic("handlers: views and languages are required")
	}
	return &Site{views: v, baseURL: strings.TrimSuffix(baseURL, "/"), languages: languages}
}

// Supports reports whether lang is a site language.
func (s *Site) Supports(lang string) bool { return slices.Contains(s.languages, lang) }

// language is the language of the request, or the default.
func (s *Site) language(c essencek.Context) string {
	if lang := c.Param("locale"); s.Supports(lang) {
		return lang
	}
	if lang := c.Language(); s.Supports(lang) {
		return lang
	}
	return s.languages[0]
}

// page builds the model of a page at path, with titles looked up under
// titleKey and descKey.
func (s *Site) page(c essencek.Context, path, titleKey, descKey string, content any) views.PageData {
	var data views.PageData
	if tr := middlewares.GetTranslator(c); tr != nil {
		data = views.NewPageData(tr, s.language(c), s.languages)
	} else {
		data = views.NewPageData(nil, s.language(c), s.languages)
	}
	data.Path = path
	data.BaseURL = s.baseURL
	data.CSRFField = middlewares.CSRFField(c)
	data.RequestID = middlewares.GetRequestID(c)
	data.Title = data.T(titleKey)
	if descKey == "" {
		descKey = "meta.description"
	}
	data.Description = data.T(descKey)
	data.Content = content
	return data
}

// render writes a full page, or only its content for non-boosted htmx
// requests.
func (s *Site) render(c essencek.Context, code int, name string, data views.PageData) error {
	return c.RenderPartial(code, s.views.Page(name, data), s.views.Content(name, data))
}

// requireLocale rejects paths whose locale segment is not a site language.
func (s *Site) requireLocale(next essencek.HandlerFunc) essencek.HandlerFunc {
	return func(c essencek.Context) error {
		if !s.Supports(c.Param("locale")) {
			return essencek.ErrNotFound("unknown locale")
		}
		return next(c)
	}
}

// clientIP returns the host part of the remote address. The RealIP
// middleware rewrites it when the server runs behind a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
