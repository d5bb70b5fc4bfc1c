package validator

import (
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	engine     *playground.Validate
	engineOnce sync.Once
)

func grammar() *playground.Validate {
	engineOnce.Do(func() {
		engine = playground.New()
	})
	return engine
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	if s == "" {
		return false
	}
	return grammar().Var(s, "email") == nil
}

// Email fails when value is not a syntactically valid email address.
func Email(field, value string) Rule {
	return newRule(field, "must be a valid email address", KeyEmail, nil, func() bool {
		return IsEmail(value)
	})
}
