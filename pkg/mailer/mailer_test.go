package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	texttemplate "text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(`<html><body>{{.Content}}</body></html>`)},
		"contact.md":        {Data: []byte("---\nSubject: Nouveau message de {{.Email}}\n---\n**Téléphone** : {{.Phone}}\n")},
		"plain.md":          {Data: []byte("Bonjour {{.Email}}\n")},
		"broken.md":         {Data: []byte("{{.Email")},
	}
}

type data struct {
	Email string
	Phone string
}

func newMailer(s mailer.Sender) *mailer.Mailer {
	return mailer.New(s, mailer.NewRenderer(testFS()), mailer.Config{
		DefaultLayout:   "base.html",
		FallbackSubject: "Nouveau message",
	})
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	s := &mockSender{}
	s.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.To[0] == "contact@lessencek.fr" &&
			e.Subject == "Nouveau message de a@b.com" &&
			e.ReplyTo == "a@b.com" &&
			e.Headers["X-Entity-Ref-ID"] == "ref-1" &&
			e.Tags["source"] == "contact" &&
			strings.Contains(e.HTML, "<strong>Téléphone</strong>") &&
			strings.Contains(e.Text, "0600000000")
	})).Return(nil).Once()

	err := newMailer(s).Send(context.Background(), mailer.SendParams{
		To:       "contact@lessencek.fr",
		Template: "contact.md",
		ReplyTo:  "a@b.com",
		Headers:  map[string]string{"X-Entity-Ref-ID": "ref-1"},
		Tags:     mailer.Tags{"source": "contact"},
		Data:     data{Email: "a@b.com", Phone: "0600000000"},
	})
	require.NoError(t, err)
	s.AssertExpectations(t)
}

func TestMailer_Send_Subject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		subject  string
		want     string
	}{
		{"from frontmatter", "contact.md", "", "Nouveau message de a@b.com"},
		{"explicit override", "contact.md", "Devis {{.Phone}}", "Devis 0600000000"},
		{"fallback", "plain.md", "", "Nouveau message"},
		{"newlines collapsed", "plain.md", "Hello\r\nBcc: x@y.z", "Hello Bcc: x@y.z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got string
			s := &mockSender{}
			s.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				got = args.Get(1).(*mailer.Email).Subject
			}).Return(nil)

			err := newMailer(s).Send(context.Background(), mailer.SendParams{
				To:       "contact@lessencek.fr",
				Template: tt.template,
				Subject:  tt.subject,
				Data:     data{Email: "a@b.com", Phone: "0600000000"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMailer_Send_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no recipient", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		err := newMailer(s).Send(context.Background(), mailer.SendParams{Template: "contact.md"})
		require.ErrorIs(t, err, mailer.ErrNoRecipient)
		s.AssertNotCalled(t, "Send")
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		err := newMailer(s).Send(context.Background(), mailer.SendParams{To: "x@y.z", Template: "nope.md"})
		require.ErrorIs(t, err, mailer.ErrTemplateNotFound)
		s.AssertNotCalled(t, "Send")
	})

	t.Run("missing layout", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		err := newMailer(s).Send(context.Background(), mailer.SendParams{To: "x@y.z", Template: "plain.md", Layout: "nope.html"})
		require.ErrorIs(t, err, mailer.ErrLayoutNotFound)
	})

	t.Run("template parse error", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{}
		err := newMailer(s).Send(context.Background(), mailer.SendParams{To: "x@y.z", Template: "broken.md"})
		require.ErrorIs(t, err, mailer.ErrRenderFailed)
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		s := &mockSender{}
		s.On("Send", mock.Anything, mock.Anything).Return(boom)
		err := newMailer(s).Send(context.Background(), mailer.SendParams{To: "x@y.z", Template: "plain.md", Data: data{}})
		require.ErrorIs(t, err, mailer.ErrSendFailed)
		require.ErrorIs(t, err, boom)
	})
}

func TestMailer_SendRaw(t *testing.T) {
	t.Parallel()

	s := &mockSender{}
	s.On("Send", mock.Anything, mock.Anything).Return(nil)
	m := newMailer(s)
	ctx := context.Background()

	assert.ErrorIs(t, m.SendRaw(ctx, nil), mailer.ErrNoRecipient)
	assert.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{}), mailer.ErrNoRecipient)
	assert.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{To: []string{"x@y.z"}, Subject: " "}), mailer.ErrNoSubject)
	assert.ErrorIs(t, m.SendRaw(ctx, &mailer.Email{To: []string{"x@y.z"}, Subject: "s"}), mailer.ErrNoContent)
	require.NoError(t, m.SendRaw(ctx, &mailer.Email{To: []string{"x@y.z"}, Subject: "s", HTML: "<p>hi</p>"}))
	s.AssertNumberOfCalls(t, "Send", 1)
}

func TestRenderer_Funcs(t *testing.T) {
	t.Parallel()

	fsys := testFS()
	fsys["upper.md"] = &fstest.MapFile{Data: []byte("---\nSubject: '{{upper .Email}}'\n---\n{{upper .Email}}")}
	r := mailer.NewRendererWithConfig(fsys, mailer.RendererConfig{
		Funcs: texttemplate.FuncMap{"upper": strings.ToUpper},
	})

	res, err := r.Render("base.html", "upper.md", data{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "A@B.COM")
	assert.Equal(t, "{{upper .Email}}", res.Metadata["Subject"])
}

func TestRenderer_EscapesLayoutButNotContent(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`<title>{{.Metadata.Title}}</title>{{.Content}}`)},
		"t.md":              {Data: []byte("---\nTitle: <b>x</b>\n---\n# Titre\n")},
	}
	res, err := mailer.NewRenderer(fsys).Render("base.html", "t.md", nil)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, res.HTML, "<h1>Titre</h1>")
	assert.Equal(t, "# Titre\n", res.Text)
}

func TestRecipient(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a@b.com", mailer.Recipient("", "a@b.com"))
	assert.Equal(t, `"L'Essence K" <site@lessencek.fr>`, mailer.Recipient("L'Essence K", "site@lessencek.fr"))
	assert.Equal(t, mailer.Tags{"a": struct{}{}, "b": struct{}{}}, mailer.SimpleTags("a", "b"))
}

func TestLogSender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := mailer.New(mailer.NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil))), mailer.NewRenderer(testFS()), mailer.Config{DefaultLayout: "base.html"})

	err := m.Send(context.Background(), mailer.SendParams{
		To:       "contact@lessencek.com",
		Template: "contact.md",
		ReplyTo:  "a@b.com",
		Data:     data{Email: "a@b.com", Phone: "0600000000"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"subject":"Nouveau message de a@b.com"`)
	assert.Contains(t, buf.String(), `"reply_to":"a@b.com"`)
}
