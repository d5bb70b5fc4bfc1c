// Package validator provides rule-based and tag-based validation with
// translatable error messages.
//
// Rules are plain values built by constructor functions and evaluated with
// Apply. Every failed rule contributes a ValidationError carrying a
// translation key and the values needed to render it:
//
//	err := validator.Apply(
//		validator.Email("email", form.Email),
//		validator.MinLenString("message", form.Message, 10),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		ve.Translate(translator.TranslateMessage)
//	}
//
// Structs can be validated from `validate` tags with ValidateStruct:
//
//	type Form struct {
//		Email string `form:"email" validate:"required;email"`
//		Phone string `form:"phone" validate:"required;min:10"`
//	}
//
// Email grammar is delegated to github.com/go-playground/validator/v10.
package validator
