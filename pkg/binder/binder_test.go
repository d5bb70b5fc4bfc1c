package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/pkg/binder"
)

type contactForm struct {
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Message  string `form:"message"`
	Website  string `form:"website"`
	Consent  bool   `form:"consent"`
	Ignored  string `form:"-"`
	Services []string
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/fr/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		req := postForm(url.Values{
			"email":    {"a@b.com"},
			"phone":    {"06 00 00 00 00"},
			"message":  {"Bonjour, je voudrais un devis."},
			"consent":  {"on"},
			"Ignored":  {"x"},
			"-":        {"x"},
			"services": {"dressing", "placard"},
		})

		var f contactForm
		require.NoError(t, binder.Form()(req, &f))

		assert.Equal(t, "a@b.com", f.Email)
		assert.Equal(t, "06 00 00 00 00", f.Phone)
		assert.Equal(t, "Bonjour, je voudrais un devis.", f.Message)
		assert.True(t, f.Consent)
		assert.Empty(t, f.Ignored)
		assert.Empty(t, f.Website)
		assert.Equal(t, []string{"dressing", "placard"}, f.Services)
	})

	t.Run("ignores query string values", func(t *testing.T) {
		t.Parallel()
		req := postForm(url.Values{"message": {"body"}})
		req.URL.RawQuery = "email=query@b.com"

		var f contactForm
		require.NoError(t, binder.Form()(req, &f))
		assert.Empty(t, f.Email)
	})

	t.Run("rejects non-pointer", func(t *testing.T) {
		t.Parallel()
		err := binder.Form()(postForm(url.Values{}), contactForm{})
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Parallel()
		var f contactForm
		err := binder.Form()(postForm(url.Values{"consent": {"maybe"}}), &f)
		assert.ErrorIs(t, err, binder.ErrInvalidValue)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type filter struct {
		Category string `query:"categorie"`
		Page     int    `query:"page"`
	}

	req := httptest.NewRequest(http.MethodGet, "/fr/realisations?categorie=dressing&page=2", nil)
	var f filter
	require.NoError(t, binder.Query()(req, &f))
	assert.Equal(t, "dressing", f.Category)
	assert.Equal(t, 2, f.Page)

	req = httptest.NewRequest(http.MethodGet, "/fr/realisations?page=abc", nil)
	assert.ErrorIs(t, binder.Query()(req, &f), binder.ErrInvalidValue)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `json:"email"`
	}

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		var p payload
		require.NoError(t, binder.JSON()(req, &p))
		assert.Equal(t, "a@b.com", p.Email)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
		req.Header.Set("Content-Type", "application/json")
		var p payload
		assert.ErrorIs(t, binder.JSON()(req, &p), binder.ErrInvalidJSON)
	})

	t.Run("rejects wrong content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")
		var p payload
		assert.ErrorIs(t, binder.JSON()(req, &p), binder.ErrUnsupportedContent)
	})
}
