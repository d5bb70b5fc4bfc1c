package views

import (
	"fmt"
	"html/template"
	"net/url"

	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/gallery"
	"github.com/jordanlepera/essencek/pkg/i18n"
)

// Translator is satisfied by *i18n.Translator.
type Translator interface {
	T(key string, placeholders ...i18n.M) string
}

// PageData is the model every template receives.
type PageData struct {
	tr Translator

	Lang        string
	Languages   []string
	Path        string // path after the locale, such as "/contact"
	Title       string
	Description string
	CSRFField   template.HTML
	RequestID   string
	BaseURL     string
	Content     any
}

// NewPageData creates the model of a page in lang. A nil tr returns keys.
func NewPageData(tr Translator, lang string, languages []string) PageData {
	return PageData{tr: tr, Lang: lang, Languages: languages}
}

// T translates key. Extra arguments are placeholder name/value pairs.
func (p PageData) T(key string, pairs ...any) string {
	if p.tr == nil {
		return key
	}
	if len(pairs) < 2 {
		return p.tr.T(key)
	}
	m := make(i18n.M, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return p.tr.T(key, m)
}

// URL prefixes path with the page locale.
func (p PageData) URL(path string) string { return "/" + p.Lang + path }

// SwitchURL links to the same page in lang.
func (p PageData) SwitchURL(lang string) string {
	return "/lang/" + lang + "?next=" + url.QueryEscape(p.Path)
}

// Canonical is the absolute URL of the page.
func (p PageData) Canonical() string { return p.BaseURL + p.URL(p.Path) }

// Active reports whether path is the current section.
func (p PageData) Active(path string) bool {
	return p.Path == path || (len(p.Path) > len(path) && p.Path[:len(path)+1] == path+"/")
}

// Service is one workshop offering. Its texts are translation keys under
// services.{slug}.
type Service struct {
	Slug     string
	Image    string
	Features int
}

func (s Service) key(k string) string { return "services." + s.Slug + "." + k }

func (s Service) TitleKey() string       { return s.key("title") }
func (s Service) SummaryKey() string     { return s.key("summary") }
func (s Service) DescriptionKey() string { return s.key("description") }

// FeatureKeys lists the feature translation keys.
func (s Service) FeatureKeys() []string {
	keys := make([]string, s.Features)
	for i := range keys {
		keys[i] = s.key(fmt.Sprintf("features.%d", i))
	}
	return keys
}

// Services are the workshop offerings, in display order.
var Services = []Service{
	{Slug: "dressing", Image: "/static/img/services/dressing.webp", Features: 4},
	{Slug: "kustom", Image: "/static/img/services/kustom.webp", Features: 4},
	{Slug: "mansarde", Image: "/static/img/services/mansarde.webp", Features: 4},
	{Slug: "mobilier", Image: "/static/img/services/mobilier.webp", Features: 4},
	{Slug: "placard", Image: "/static/img/services/placard.webp", Features: 4},
	{Slug: "salledebain", Image: "/static/img/services/salledebain.webp", Features: 4},
}

// FindService returns the service with slug.
func FindService(slug string) (Service, bool) {
	for _, s := range Services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}

// HomeData is the content of the home page.
type HomeData struct {
	Services   []Service
	Highlights []gallery.Image
}

// GalleryData is the content of the realisations page.
type GalleryData struct {
	Groups     []gallery.Group
	Categories []string
	Category   string
}

// ContactDetails are the workshop coordinates shown on the contact page.
type ContactDetails struct {
	Email   string
	Phone   string
	Address string
}

// DefaultContactDetails are the published coordinates.
var DefaultContactDetails = ContactDetails{
	Email:   "contact@lessencek.fr",
	Phone:   "06 00 00 00 00",
	Address: "Atelier L'Essence K, France",
}

// ContactData is the content of the contact page and form partial.
type ContactData struct {
	Details ContactDetails
	Form    contact.Form
	Result  *contact.SubmissionResult
}

// FieldError returns the first error of field from the last submission.
func (d ContactData) FieldError(field string) string {
	if d.Result == nil {
		return ""
	}
	return d.Result.FieldError(field)
}

// ErrorData is the content of error pages.
type ErrorData struct {
	Code      int
	TitleKey  string
	DetailKey string
}
