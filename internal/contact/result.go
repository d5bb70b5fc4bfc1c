package contact

import "github.com/jordanlepera/essencek/pkg/validator"

// Result messages.
const (
	MsgValidation    = "fix the errors below"
	MsgBot           = "suspicious activity detected"
	MsgRateLimited   = "too many attempts, retry later"
	MsgInvalidEmail  = "invalid or disallowed email address"
	MsgDenied        = "access denied"
	MsgSecurityError = "security error, retry"
	MsgDeliveryError = "error sending email"
	MsgSuccess       = "message sent successfully"
)

// Translation keys of the result messages.
const (
	KeyValidation    = "contact.result.validation"
	KeyBot           = "contact.result.bot"
	KeyRateLimited   = "contact.result.rate_limited"
	KeyInvalidEmail  = "contact.result.invalid_email"
	KeyDenied        = "contact.result.denied"
	KeySecurityError = "contact.result.security_error"
	KeyDeliveryError = "contact.result.delivery_error"
	KeySuccess       = "contact.result.success"
)

// SubmissionResult is what the visitor is told.
type SubmissionResult struct {
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	Message     string              `json:"message"`
	MessageKey  string              `json:"messageKey"`
	Success     bool                `json:"success"`

	fields validator.ValidationErrors
}

func newResult(success bool, msg, key string) SubmissionResult {
	return SubmissionResult{Success: success, Message: msg, MessageKey: key}
}

// Localize returns a copy with the message and field errors translated by
// tr. The field errors survive only on results that have not been
// serialized.
func (r SubmissionResult) Localize(tr func(key string, values map[string]any) string) SubmissionResult {
	out := r
	if r.MessageKey != "" {
		out.Message = tr(r.MessageKey, nil)
	}
	if len(r.fields) > 0 {
		fields := make(validator.ValidationErrors, len(r.fields))
		copy(fields, r.fields)
		fields.Translate(tr)
		out.fields = fields
		out.FieldErrors = fields.Fields()
	}
	return out
}

// FieldError returns the first error of field, or "".
func (r SubmissionResult) FieldError(field string) string {
	if msgs := r.FieldErrors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
