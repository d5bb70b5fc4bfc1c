package contact

import (
	"errors"

	"github.com/jordanlepera/essencek/pkg/validator"
)

var (
	ErrValidation       = errors.New("contact: invalid submission")
	ErrAbuseDenied      = errors.New("contact: denied by abuse screening")
	ErrTransientService = errors.New("contact: screening unavailable")
	ErrDelivery         = errors.New("contact: email delivery failed")
)

// ValidationError lists the failing fields.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// AbuseDeniedError carries the denying decision.
type AbuseDeniedError struct {
	Decision Decision
}

func (e *AbuseDeniedError) Error() string {
	return ErrAbuseDenied.Error() + ": " + e.Decision.String()
}

func (e *AbuseDeniedError) Unwrap() error { return ErrAbuseDenied }

// ResultFromError maps a submission error to the result shown to the
// visitor. A nil error is a success. Unknown errors are reported as
// delivery failures.
func ResultFromError(err error) SubmissionResult {
	if err == nil {
		return newResult(true, MsgSuccess, KeySuccess)
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		res := newResult(false, MsgValidation, KeyValidation)
		res.fields = ve.Fields
		res.FieldErrors = ve.Fields.Fields()
		return res
	}

	var de *AbuseDeniedError
	if errors.As(err, &de) {
		switch de.Decision {
		case DenyBot:
			return newResult(false, MsgBot, KeyBot)
		case DenyRateLimited:
			return newResult(false, MsgRateLimited, KeyRateLimited)
		case DenyInvalidEmail:
			return newResult(false, MsgInvalidEmail, KeyInvalidEmail)
		default:
			return newResult(false, MsgDenied, KeyDenied)
		}
	}

	switch {
	case errors.Is(err, ErrAbuseDenied):
		return newResult(false, MsgDenied, KeyDenied)
	case errors.Is(err, ErrTransientService):
		return newResult(false, MsgSecurityError, KeySecurityError)
	default:
		return newResult(false, MsgDeliveryError, KeyDeliveryError)
	}
}
