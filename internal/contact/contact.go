// Package contact handles contact-form submissions: validation, abuse
// screening and the notification email to the workshop.
package contact

import "context"

// Form is the contact form as posted. The website field is a honeypot
// hidden from humans.
type Form struct {
	Email   string `form:"email" sanitize:"trim,email"`
	Phone   string `form:"phone" sanitize:"trim,single_line"`
	Message string `form:"message" sanitize:"trim"`
	Website string `form:"website" sanitize:"trim"`
}

// Submission is a validated Form. It lives for one request and is never
// stored.
type Submission struct {
	Email       string
	Phone       string
	PhoneDigits string
	Message     string
	Reference   string
}

// Meta is what the request tells about the submitter.
type Meta struct {
	IP             string
	UserAgent      string
	Accept         string
	AcceptLanguage string
	Honeypot       string
	RequestID      string
	Language       string
}

// Screening is the input of an abuse check.
type Screening struct {
	Email string
	Meta  Meta
}

// Decision is the outcome of abuse screening.
type Decision int

const (
	// DecisionUnknown is never returned by a well-behaved Screener and is
	// treated as a denial.
	DecisionUnknown Decision = iota
	Allow
	DenyBot
	DenyRateLimited
	DenyInvalidEmail
	DenyOther
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyBot:
		return "deny-bot"
	case DenyRateLimited:
		return "deny-rate-limited"
	case DenyInvalidEmail:
		return "deny-invalid-email"
	case DenyOther:
		return "deny-other"
	default:
		return "unknown"
	}
}

// Denied reports whether the submission must be rejected.
func (d Decision) Denied() bool { return d != Allow }

// Screener decides whether a submission may proceed. An error means the
// decision could not be made.
type Screener interface {
	Screen(ctx context.Context, s Screening) (Decision, error)
}

// Mailer delivers the notification for an accepted submission.
type Mailer interface {
	Notify(ctx context.Context, s Submission) error
}

// Config is loaded once at startup.
type Config struct {
	OperatorEmail    string `env:"CONTACT_OPERATOR_EMAIL" envDefault:"contact@lessencek.com"`
	SenderName       string `env:"CONTACT_FROM_NAME" envDefault:"L'Essence K"`
	SenderEmail      string `env:"CONTACT_FROM_EMAIL" envDefault:"contact@lessencek.com"`
	Subject          string `env:"CONTACT_SUBJECT"`
	Template         string `env:"CONTACT_TEMPLATE" envDefault:"contact.md"`
	MinPhoneLength   int    `env:"CONTACT_MIN_PHONE_LENGTH" envDefault:"10"`
	MinMessageLength int    `env:"CONTACT_MIN_MESSAGE_LENGTH" envDefault:"10"`
	// MaxMessageLength caps the message when positive. Off by default.
	MaxMessageLength int `env:"CONTACT_MAX_MESSAGE_LENGTH" envDefault:"0"`
}

// DefaultConfig matches the envDefault tags.
func DefaultConfig() Config {
	return Config{
		OperatorEmail:    "contact@lessencek.com",
		SenderName:       "L'Essence K",
		SenderEmail:      "contact@lessencek.com",
		Template:         "contact.md",
		MinPhoneLength:   10,
		MinMessageLength: 10,
	}
}
