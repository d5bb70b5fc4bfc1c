package mailer

import "fmt"

// Tags are provider tags. A struct{} value marks a presence-only tag.
type Tags map[string]any

// SimpleTags builds presence-only tags.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats an RFC 5322 address. An empty name yields the bare address.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%q <%s>", name, email)
}

// Email is a message ready for delivery.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string
	From        string // overrides the provider default
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment is a file attached to an Email.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string
	Content     []byte
}
