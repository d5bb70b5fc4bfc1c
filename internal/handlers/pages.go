package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/jordanlepera/essencek"
	"github.com/jordanlepera/essencek/internal/gallery"
	"github.com/jordanlepera/essencek/internal/views"
	"github.com/jordanlepera/essencek/middlewares"
)

// maxHighlights caps the images shown on the home page.
const maxHighlights = 6

// Gallery lists realisation images grouped by category. An empty category
// lists every group.
type Gallery interface {
	Groups(ctx context.Context, category string) ([]gallery.Group, error)
}

// Pages serves the informational pages and the language switch.
type Pages struct {
	*Site
	gallery Gallery
}

// NewPages creates the Pages handler.
func NewPages(site *Site, g Gallery) *Pages {
	return &Pages{Site: site, gallery: g}
}

// Routes implements essencek.Handler.
func (h *Pages) Routes(r essencek.Router) {
	r.GET("/", h.root)
	r.GET("/lang/{code}", h.switchLanguage)
	r.GET("/{locale}", h.localeRoot, h.requireLocale)
	r.GET("/{locale}/accueil", h.home, h.requireLocale)
	r.GET("/{locale}/services", h.services, h.requireLocale)
	r.GET("/{locale}/services/{slug}", h.service, h.requireLocale)
	r.GET("/{locale}/histoire", h.history, h.requireLocale)
	r.GET("/{locale}/realisations", h.realisations, h.requireLocale)
}

func (h *Pages) root(c essencek.Context) error {
	return c.Redirect(http.StatusFound, "/"+h.language(c)+"/accueil")
}

func (h *Pages) localeRoot(c essencek.Context) error {
	return c.Redirect(http.StatusFound, "/"+c.Param("locale")+"/accueil")
}

// switchLanguage remembers the chosen language and sends the visitor back
// to the same page in it.
func (h *Pages) switchLanguage(c essencek.Context) error {
	lang := c.Param("code")
	if !h.Supports(lang) {
		return essencek.ErrNotFound("unknown language")
	}
	middlewares.SetLanguageCookie(c, lang)
	return c.Redirect(http.StatusFound, "/"+lang+safeNext(c.Query("next")))
}

// safeNext keeps next only when it is a local path.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/accueil"
	}
	return next
}

func (h *Pages) home(c essencek.Context) error {
	groups, err := h.gallery.Groups(c.Context(), "")
	if err != nil {
		c.LogWarn("home highlights unavailable", "error", err)
	}

	var highlights []gallery.Image
	for _, g := range groups {
		if len(g.Images) > 0 {
			highlights = append(highlights, g.Images[0])
		}
		if len(highlights) == maxHighlights {
			break
		}
	}

	data := h.page(c, "/accueil", "home.title", "", views.HomeData{Services: views.Services, Highlights: highlights})
	return h.render(c, http.StatusOK, "home", data)
}

func (h *Pages) services(c essencek.Context) error {
	data := h.page(c, "/services", "services.title", "", views.HomeData{Services: views.Services})
	return h.render(c, http.StatusOK, "services", data)
}

func (h *Pages) service(c essencek.Context) error {
	svc, ok := views.FindService(c.Param("slug"))
	if !ok {
		return essencek.ErrNotFound("unknown service")
	}
	data := h.page(c, "/services/"+svc.Slug, svc.TitleKey(), svc.SummaryKey(), svc)
	return h.render(c, http.StatusOK, "service", data)
}

func (h *Pages) history(c essencek.Context) error {
	data := h.page(c, "/histoire", "history.title", "", nil)
	return h.render(c, http.StatusOK, "history", data)
}

// realisations lists the gallery. An unknown categorie shows every group.
// Filter links swap only the image groups.
func (h *Pages) realisations(c essencek.Context) error {
	category := c.Query("categorie")
	if !gallery.IsCategory(category) {
		category = ""
	}

	groups, err := h.gallery.Groups(c.Context(), category)
	if err != nil {
		return essencek.ErrInternal("gallery unavailable", essencek.WithError(err))
	}

	data := h.page(c, "/realisations", "gallery.title", "", views.GalleryData{
		Groups:     groups,
		Categories: gallery.Categories,
		Category:   category,
	})
	return c.RenderPartial(http.StatusOK,
		h.views.Page("gallery", data),
		h.views.Partial("gallery", "gallery_groups", data),
	)
}
