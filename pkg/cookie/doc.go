// Package cookie manages plain, signed and encrypted HTTP cookies and
// single-read flash values.
//
// Signing and encryption are delegated to github.com/gorilla/securecookie.
// Both require a secret of at least 32 bytes set with [WithSecret]; without
// one the secure operations return [ErrNoSecret].
//
//	m := cookie.New(
//		cookie.WithSecret(cfg.CookieSecret),
//		cookie.WithSecure(cfg.IsProduction()),
//	)
//
//	m.Set(w, "lang", "en", 365*24*3600)
//	_ = m.SetFlash(w, "contact", result)
//
//	var result contact.SubmissionResult
//	err := m.Flash(w, r, "contact", &result) // deleted after reading
//
// Flash values are JSON encoded, so dest can be any JSON-compatible type.
package cookie
