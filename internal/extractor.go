package internal

// ExtractorSource reads one candidate value from the request.
type ExtractorSource = func(Context) (string, bool)

// Extractor returns the first non-empty value among its sources.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor trying sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first hit, or ("", false).
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func nonEmpty(v string) (string, bool) { return v, v != "" }

// FromParam reads a chi URL parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Param(name)) }
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Query(name)) }
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Header(name)) }
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) { return nonEmpty(c.Form(name)) }
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}

// FromCookieSigned reads a signed cookie. Tampered values are ignored.
func FromCookieSigned(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.CookieSigned(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}
