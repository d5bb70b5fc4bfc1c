package views_test

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/gallery"
	"github.com/jordanlepera/essencek/internal/locales"
	"github.com/jordanlepera/essencek/internal/views"
	"github.com/jordanlepera/essencek/pkg/i18n"
)

type missingKeys struct {
	mu   sync.Mutex
	keys []string
}

func (m *missingKeys) add(lang, _, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, lang+":"+key)
}

func translator(t *testing.T, lang string) (*i18n.Translator, *missingKeys) {
	t.Helper()
	missing := &missingKeys{}
	svc, err := i18n.New(
		i18n.WithDefaultLanguage(locales.Default),
		i18n.WithLanguages(locales.Languages...),
		i18n.WithYAMLDir(locales.FS),
		i18n.WithMissingKeyHandler(missing.add),
	)
	require.NoError(t, err)
	return i18n.NewTranslator(svc, lang, locales.Namespace), missing
}

func pageData(tr views.Translator, lang, path string, content any) views.PageData {
	data := views.NewPageData(tr, lang, locales.Languages)
	data.Path = path
	data.BaseURL = "https://lessencek.fr"
	data.Title = "Titre"
	data.CSRFField = template.HTML(`<input type="hidden" name="_csrf" value="tok">`)
	data.Content = content
	return data
}

func TestNew(t *testing.T) {
	t.Parallel()
	v, err := views.New()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.NotPanics(t, func() { views.MustNew() })
}

func TestPage_EveryPageRendersInEveryLanguage(t *testing.T) {
	t.Parallel()
	v := views.MustNew()

	res := contact.ResultFromError(nil)
	pages := map[string]struct {
		path    string
		content any
	}{
		"home":     {"/accueil", views.HomeData{Services: views.Services, Highlights: []gallery.Image{{URL: "/img/a.webp", Alt: "a"}}}},
		"services": {"/services", views.HomeData{Services: views.Services}},
		"service":  {"/services/dressing", views.Services[0]},
		"history":  {"/histoire", nil},
		"gallery":  {"/realisations", views.GalleryData{Categories: gallery.Categories, Groups: []gallery.Group{{Category: "dressing", Images: []gallery.Image{{URL: "/img/d.webp", Alt: "d"}}}}}},
		"contact":  {"/contact", views.ContactData{Details: views.DefaultContactDetails, Result: &res}},
		"error":    {"/accueil", views.ErrorData{Code: 404, TitleKey: "errors.not_found.title", DetailKey: "errors.not_found.detail"}},
	}

	for _, lang := range locales.Languages {
		tr, missing := translator(t, lang)
		for name, p := range pages {
			var buf bytes.Buffer
			err := v.Page(name, pageData(tr, lang, p.path, p.content)).Render(context.Background(), &buf)
			require.NoError(t, err, "%s/%s", lang, name)
			assert.Contains(t, buf.String(), `<html lang="`+lang+`">`, "%s/%s", lang, name)
		}
		assert.Empty(t, missing.keys, lang)
	}
}

func TestPage_Home(t *testing.T) {
	t.Parallel()
	v := views.MustNew()
	tr, _ := translator(t, "fr")

	var buf bytes.Buffer
	data := pageData(tr, "fr", "/accueil", views.HomeData{Services: views.Services})
	require.NoError(t, v.Page("home", data).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "<title>Titre | L'Essence K</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://lessencek.fr/fr/accueil">`)
	assert.Contains(t, html, `hreflang="en" href="https://lessencek.fr/en/accueil"`)
	assert.Contains(t, html, `href="/lang/en?next=%2Faccueil"`)
	assert.Contains(t, html, `href="/fr/services/dressing"`)
	assert.Contains(t, html, "Dressings")
	assert.Contains(t, html, `<a href="/fr/accueil" aria-current="page">`)
	assert.NotContains(t, html, "Quelques réalisations", "no highlights section without images")
}

func TestContent_HasNoLayout(t *testing.T) {
	t.Parallel()
	v := views.MustNew()
	tr, _ := translator(t, "en")

	var buf bytes.Buffer
	require.NoError(t, v.Content("history", pageData(tr, "en", "/histoire", nil)).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Our story")
	assert.NotContains(t, buf.String(), "<html")
}

func TestPartial_ContactFormWithErrors(t *testing.T) {
	t.Parallel()
	v := views.MustNew()
	tr, _ := translator(t, "fr")

	svc := contact.NewService(contact.DefaultConfig(), nopScreener{}, nopMailer{})
	form := contact.Form{Email: "not-an-email", Phone: "0600", Message: "<b>court"}
	res := svc.Submit(context.Background(), form, contact.Meta{}).Localize(tr.TranslateMessage)
	require.False(t, res.Success)

	var buf bytes.Buffer
	data := pageData(tr, "fr", "/contact", views.ContactData{Form: form, Result: &res})
	require.NoError(t, v.Partial("contact", "contact_form", data).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `<form id="contact-form"`)
	assert.Contains(t, html, `hx-post="/fr/contact"`)
	assert.Contains(t, html, `name="_csrf" value="tok"`)
	assert.Contains(t, html, `<p class="alert error" role="alert">Veuillez corriger les erreurs ci-dessous.</p>`)
	assert.Contains(t, html, `<p id="email-error" class="field-error">Adresse email invalide.</p>`)
	assert.Contains(t, html, `<p id="phone-error" class="field-error">Le numéro doit contenir au moins 10 caractères.</p>`)
	assert.Contains(t, html, `id="message-error"`)
	assert.Contains(t, html, `value="not-an-email"`)
	assert.Contains(t, html, "&lt;b&gt;court")
	assert.NotContains(t, html, "<html")
}

func TestPartial_ContactFormSuccess(t *testing.T) {
	t.Parallel()
	v := views.MustNew()
	tr, _ := translator(t, "en")

	res := contact.ResultFromError(nil).Localize(tr.TranslateMessage)
	var buf bytes.Buffer
	data := pageData(tr, "en", "/contact", views.ContactData{Result: &res})
	require.NoError(t, v.Partial("contact", "contact_form", data).Render(context.Background(), &buf))

	assert.Contains(t, buf.String(), `<p class="alert success" role="status">Message sent successfully!</p>`)
	assert.NotContains(t, buf.String(), "field-error")
}

func TestPartial_GalleryGroups(t *testing.T) {
	t.Parallel()
	v := views.MustNew()
	tr, _ := translator(t, "fr")

	var buf bytes.Buffer
	data := pageData(tr, "fr", "/realisations", views.GalleryData{Categories: gallery.Categories, Category: "placard"})
	require.NoError(t, v.Partial("gallery", "gallery_groups", data).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `<div id="gallery">`)
	assert.Contains(t, buf.String(), "Aucune réalisation à afficher pour le moment.")
}

func TestUnknownTemplate(t *testing.T) {
	t.Parallel()
	v := views.MustNew()

	var buf bytes.Buffer
	err := v.Page("missing", pageData(nil, "fr", "/", nil)).Render(context.Background(), &buf)
	require.ErrorIs(t, err, views.ErrTemplateNotFound)

	err = v.Partial("contact", "missing_block", pageData(nil, "fr", "/", nil)).Render(context.Background(), &buf)
	require.ErrorIs(t, err, views.ErrTemplateNotFound)
	assert.Empty(t, buf.String())
}

func TestPageData(t *testing.T) {
	t.Parallel()
	tr, _ := translator(t, "en")

	data := pageData(tr, "en", "/services/placard", nil)
	assert.Equal(t, "/en/contact", data.URL("/contact"))
	assert.Equal(t, "/lang/fr?next=%2Fservices%2Fplacard", data.SwitchURL("fr"))
	assert.Equal(t, "https://lessencek.fr/en/services/placard", data.Canonical())
	assert.True(t, data.Active("/services"))
	assert.False(t, data.Active("/serv"))
	assert.False(t, data.Active("/contact"))
	assert.Equal(t, "Reference: 42", data.T("errors.reference", "id", 42))

	keysOnly := views.NewPageData(nil, "fr", locales.Languages)
	assert.Equal(t, "nav.home", keysOnly.T("nav.home"))
}

func TestServices(t *testing.T) {
	t.Parallel()

	s, ok := views.FindService("mansarde")
	require.True(t, ok)
	assert.Equal(t, "services.mansarde.title", s.TitleKey())
	assert.Equal(t, []string{
		"services.mansarde.features.0",
		"services.mansarde.features.1",
		"services.mansarde.features.2",
		"services.mansarde.features.3",
	}, s.FeatureKeys())

	_, ok = views.FindService("cuisine")
	assert.False(t, ok)
}

func TestStatic(t *testing.T) {
	t.Parallel()
	f, err := views.Static().Open("static/css/site.css")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

type nopScreener struct{}

func (nopScreener) Screen(context.Context, contact.Screening) (contact.Decision, error) {
	return contact.Allow, nil
}

type nopMailer struct{}

func (nopMailer) Notify(context.Context, contact.Submission) error { return nil }
