package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlepera/essencek/pkg/validator"
)

func frenchTranslator(key string, values map[string]any) string {
	translations := map[string]string{
		"validation.required":   "Le champ {{field}} est obligatoire.",
		"validation.min_length": "Le champ {{field}} doit contenir au moins {{min}} caractères.",
		"validation.email":      "Adresse email invalide.",
	}
	result, ok := translations[key]
	if !ok {
		return key
	}
	for k, v := range values {
		result = strings.ReplaceAll(result, "{{"+k+"}}", fmt.Sprint(v))
	}
	return result
}

func TestValidationErrors_Translate(t *testing.T) {
	t.Parallel()

	t.Run("translates messages in place", func(t *testing.T) {
		t.Parallel()
		errs := validator.ValidationErrors{
			{
				Field:             "email",
				Message:           "is required",
				TranslationKey:    "validation.required",
				TranslationValues: map[string]any{"field": "email"},
			},
			{
				Field:             "message",
				Message:           "too short",
				TranslationKey:    "validation.min_length",
				TranslationValues: map[string]any{"field": "message", "min": 10},
			},
		}

		errs.Translate(frenchTranslator)

		assert.Equal(t, "Le champ email est obligatoire.", errs[0].Message)
		assert.Equal(t, "Le champ message doit contenir au moins 10 caractères.", errs[1].Message)
	})

	t.Run("nil fn is no-op", func(t *testing.T) {
		t.Parallel()
		errs := validator.ValidationErrors{
			{Field: "email", Message: "is required", TranslationKey: "validation.required"},
		}

		errs.Translate(nil)

		assert.Equal(t, "is required", errs[0].Message)
	})

	t.Run("empty errors is no-op", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Translate(frenchTranslator)
		assert.Empty(t, errs)
	})

	t.Run("skips errors without translation key", func(t *testing.T) {
		t.Parallel()
		errs := validator.ValidationErrors{
			{Field: "phone", Message: "original message"},
			{
				Field:             "email",
				Message:           "is required",
				TranslationKey:    "validation.required",
				TranslationValues: map[string]any{"field": "email"},
			},
		}

		errs.Translate(frenchTranslator)

		assert.Equal(t, "original message", errs[0].Message)
		assert.Equal(t, "Le champ email est obligatoire.", errs[1].Message)
	})

	t.Run("end-to-end with Apply", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Email("email", "not-an-email"),
			validator.MinLenString("message", "Salut", 10),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.NotNil(t, ve)
		ve.Translate(frenchTranslator)

		assert.Equal(t, []string{"Adresse email invalide."}, ve.Get("email"))
		assert.Equal(t, []string{"Le champ message doit contenir au moins 10 caractères."}, ve.Get("message"))
		assert.Equal(t, "validation.min_length", ve.GetErrors("message")[0].TranslationKey)
		assert.Equal(t, 10, ve.GetErrors("message")[0].TranslationValues["min"])
	})
}
