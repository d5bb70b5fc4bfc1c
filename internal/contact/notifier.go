package contact

import (
	"context"
	"embed"
	"io/fs"
	"net/url"
	"strings"
	texttemplate "text/template"

	"github.com/jordanlepera/essencek/pkg/mailer"
	"github.com/jordanlepera/essencek/pkg/sanitizer"
)

//go:embed templates
var templates embed.FS

// Templates returns the embedded email templates, layouts included.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewRenderer returns a mailer.Renderer over the embedded templates with
// the md escaping function installed.
func NewRenderer() *mailer.Renderer {
	return mailer.NewRendererWithConfig(Templates(), mailer.RendererConfig{
		Funcs: texttemplate.FuncMap{"md": EscapeMarkdown},
	})
}

// EmailNotifier sends the notification to the operator inbox.
type EmailNotifier struct {
	mailer *mailer.Mailer
	config Config
}

var _ Mailer = (*EmailNotifier)(nil)

// NewEmailNotifier creates an EmailNotifier. m must use a renderer from
// NewRenderer or one with an equivalent md function.
func NewEmailNotifier(m *mailer.Mailer, cfg Config) *EmailNotifier {
	return &EmailNotifier{mailer: m, config: cfg}
}

type notification struct {
	Email     string
	Phone     string
	Message   string
	Reference string
	ReplyURL  string
}

// Notify implements Mailer. Replies go to the submitter.
func (n *EmailNotifier) Notify(ctx context.Context, sub Submission) error {
	var from string
	if n.config.SenderEmail != "" {
		from = mailer.Recipient(n.config.SenderName, n.config.SenderEmail)
	}
	return n.mailer.Send(ctx, mailer.SendParams{
		To:       n.config.OperatorEmail,
		Template: n.config.Template,
		Subject:  n.config.Subject,
		From:     from,
		ReplyTo:  sub.Email,
		Headers:  map[string]string{"X-Entity-Ref-ID": sub.Reference},
		Tags:     mailer.Tags{"category": "contact"},
		Data: notification{
			Email:     sub.Email,
			Phone:     sub.Phone,
			Message:   sanitizer.StripHTML(sub.Message),
			Reference: sub.Reference,
			ReplyURL:  mailto(sub.Email),
		},
	})
}

// mailto escapes address so that no character of it can end the markdown
// link target.
func mailto(address string) string {
	return (&url.URL{Scheme: "mailto", Opaque: url.PathEscape(address)}).String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`<`, `\<`, `>`, `\>`, `#`, `\#`, `!`, `\!`, `|`, `\|`, `~`, `\~`,
	`-`, `\-`, `+`, `\+`, `=`, `\=`,
	"\r\n", "  \n", "\n", "  \n",
)

// EscapeMarkdown makes s render as literal text, keeping line breaks.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
