// Package mailer renders markdown email templates and delivers them through
// a pluggable Sender.
//
// Templates are markdown files with optional YAML frontmatter. The body is a
// text/template executed over the caller's data, converted to HTML with
// goldmark and wrapped in an html/template layout that receives .Content and
// .Metadata:
//
//	---
//	Subject: Nouveau message de {{.Email}}
//	---
//	**Téléphone** : {{.Phone}}
//
//	[!button|Répondre](mailto:{{.Email}})
//
// The [!button|Label](URL) syntax renders a call-to-action link.
//
// Usage:
//
//	sender := resend.New(resend.Config{APIKey: key, SenderEmail: "site@lessencek.fr"})
//	m := mailer.New(sender, mailer.NewRenderer(templates.FS), mailer.Config{DefaultLayout: "base.html"})
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "contact@lessencek.fr",
//		Template: "contact.md",
//		ReplyTo:  form.Email,
//		Data:     form,
//	})
//
// Send wraps renderer failures in ErrRenderFailed, ErrTemplateNotFound or
// ErrLayoutNotFound and provider failures in ErrSendFailed.
package mailer
