package handlers

import (
	"context"
	"net/http"

	"github.com/jordanlepera/essencek"
	"github.com/jordanlepera/essencek/internal/contact"
	"github.com/jordanlepera/essencek/internal/views"
	"github.com/jordanlepera/essencek/middlewares"
)

// contactFlash is the flash key carrying the outcome of a form post to the
// page the visitor is redirected to.
const contactFlash = "contact"

// Submitter processes contact submissions. *contact.Service implements it.
type Submitter interface {
	Submit(ctx context.Context, form contact.Form, meta contact.Meta) contact.SubmissionResult
}

// Contact serves the contact page and its form.
type Contact struct {
	*Site
	submitter Submitter
	details   views.ContactDetails
}

// NewContact creates the Contact handler.
func NewContact(site *Site, submitter Submitter, details views.ContactDetails) *Contact {
	return &Contact{Site: site, submitter: submitter, details: details}
}

// Routes implements essencek.Handler.
func (h *Contact) Routes(r essencek.Router) {
	r.GET("/{locale}/contact", h.show, h.requireLocale)
	r.POST("/{locale}/contact", h.submit, h.requireLocale)
}

// flashed is the outcome of a post kept across the redirect.
type flashed struct {
	Result contact.SubmissionResult `json:"result"`
	Form   contact.Form             `json:"form"`
}

func (h *Contact) show(c essencek.Context) error {
	content := views.ContactData{Details: h.details}

	var f flashed
	if err := c.Flash(contactFlash, &f); err == nil {
		content.Form = f.Form
		content.Result = &f.Result
	}

	return h.render(c, http.StatusOK, "contact", h.page(c, "/contact", "contact.title", "", content))
}

// submit answers htmx posts with the form partial and plain posts with a
// redirect back to the page.
func (h *Contact) submit(c essencek.Context) error {
	var form contact.Form
	if _, err := c.Bind(&form); err != nil {
		return essencek.ErrBadRequest("malformed form", essencek.WithError(err))
	}

	res := h.submitter.Submit(c.Context(), form, contact.Meta{
		IP:             clientIP(c.Request()),
		UserAgent:      c.Header("User-Agent"),
		Accept:         c.Header("Accept"),
		AcceptLanguage: c.Header("Accept-Language"),
		Honeypot:       form.Website,
		RequestID:      middlewares.GetRequestID(c),
		Language:       h.language(c),
	})
	if tr := middlewares.GetTranslator(c); tr != nil {
		res = res.Localize(tr.TranslateMessage)
	}

	form.Website = ""
	if res.Success {
		form = contact.Form{}
	}

	if !c.IsHTMX() {
		err := c.SetFlash(contactFlash, flashed{Result: res, Form: form})
		if err == nil {
			return c.Redirect(http.StatusSeeOther, "/"+h.language(c)+"/contact")
		}
		c.LogWarn("contact flash unavailable", "error", err)
	}

	content := views.ContactData{Details: h.details, Form: form, Result: &res}
	data := h.page(c, "/contact", "contact.title", "", content)
	if c.IsHTMX() {
		// htmx only swaps 2xx responses, failures included.
		return c.Render(http.StatusOK, h.views.Partial("contact", "contact_form", data))
	}
	return h.render(c, statusOf(res), "contact", data)
}

// statusOf is the status of a page rendered without a redirect.
func statusOf(res contact.SubmissionResult) int {
	switch res.MessageKey {
	case contact.KeySuccess:
		return http.StatusOK
	case contact.KeyValidation:
		return http.StatusUnprocessableEntity
	case contact.KeyRateLimited:
		return http.StatusTooManyRequests
	case contact.KeySecurityError:
		return http.StatusServiceUnavailable
	case contact.KeyDeliveryError:
		return http.StatusBadGateway
	default:
		return http.StatusForbidden
	}
}
