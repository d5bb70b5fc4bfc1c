package mailer

import (
	"context"
	"errors"
	"strings"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated email.
type SendParams struct {
	To       string
	Template string // file name relative to the renderer template dir
	Data     any

	Subject     string // overrides the template subject
	Layout      string // overrides Config.DefaultLayout
	From        string
	ReplyTo     string
	CC          []string
	BCC         []string
	Headers     map[string]string
	Tags        Tags
	Attachments []Attachment
}

// Send renders params.Template and delivers it.
// The subject is taken from params, then the template frontmatter, then
// Config.FallbackSubject, and is itself executed as a template over Data.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	res, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return err
	}

	subject := params.Subject
	if subject == "" {
		subject, _ = res.Metadata["Subject"].(string)
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}
	subject, err = m.renderer.subject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.deliver(ctx, &Email{
		To:          []string{params.To},
		Subject:     subject,
		HTML:        res.HTML,
		Text:        res.Text,
		From:        params.From,
		ReplyTo:     params.ReplyTo,
		CC:          params.CC,
		BCC:         params.BCC,
		Headers:     params.Headers,
		Tags:        params.Tags,
		Attachments: params.Attachments,
	})
}

// SendRaw delivers a pre-built email.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	switch {
	case email == nil || len(email.To) == 0:
		return ErrNoRecipient
	case strings.TrimSpace(email.Subject) == "":
		return ErrNoSubject
	case email.HTML == "":
		return ErrNoContent
	}
	return m.deliver(ctx, email)
}

func (m *Mailer) deliver(ctx context.Context, email *Email) error {
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func (r *Renderer) subject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Funcs(r.funcs).Parse(subject)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	// Header injection guard.
	return strings.Join(strings.Fields(b.String()), " "), nil
}
