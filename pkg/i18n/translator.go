package i18n

// Translator binds an I18n to one language and namespace.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator creates a Translator. An empty language selects the default.
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic("i18n: service is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{i18n: i18n, language: language, namespace: namespace}
}

// T translates key.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// TranslateMessage has the shape expected by validator.ValidationErrors.Translate:
//
//	ve.Translate(translator.TranslateMessage)
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.i18n.T(t.language, t.namespace, key, values)
}

// Has reports whether key has a translation.
func (t *Translator) Has(key string) bool {
	return t.i18n.Has(t.language, t.namespace, key)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the bound namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}
