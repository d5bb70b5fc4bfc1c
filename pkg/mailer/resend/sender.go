// Package resend implements mailer.Sender on top of the Resend API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/jordanlepera/essencek/pkg/mailer"
)

// ErrNoSender is returned when neither the email nor the config names a sender.
var ErrNoSender = errors.New("resend: sender address required")

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender delivers mailer.Email values through Resend.
type Sender struct {
	emails emailSender
	config Config
}

var _ mailer.Sender = (*Sender)(nil)

// New creates a Sender with the default Resend client.
func New(cfg Config) *Sender {
	return NewWithClient(resend.NewClient(cfg.APIKey), cfg)
}

// NewWithClient creates a Sender around a preconfigured client.
func NewWithClient(client *resend.Client, cfg Config) *Sender {
	return &Sender{emails: client.Emails, config: cfg}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		if s.config.SenderEmail == "" {
			return ErrNoSender
		}
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:        from,
		To:          email.To,
		Subject:     email.Subject,
		Html:        email.HTML,
		Text:        email.Text,
		ReplyTo:     email.ReplyTo,
		Cc:          email.CC,
		Bcc:         email.BCC,
		Headers:     email.Headers,
		Tags:        tags(email.Tags),
		Attachments: attachments(email.Attachments),
	}

	if _, err := s.emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: send: %w", err)
	}
	return nil
}

func attachments(in []mailer.Attachment) []*resend.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]*resend.Attachment, len(in))
	for i, a := range in {
		out[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return out
}

// tags are sorted by name so requests are deterministic.
func tags(in mailer.Tags) []resend.Tag {
	if len(in) == 0 {
		return nil
	}
	out := make([]resend.Tag, 0, len(in))
	for name, v := range in {
		out = append(out, resend.Tag{Name: name, Value: tagValue(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
