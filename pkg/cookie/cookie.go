package cookie

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
	ErrDecrypt   = errors.New("cookie: decryption failed")
	ErrEncode    = errors.New("cookie: encoding failed")
)

const flashPrefix = "flash_"

// Manager handles cookie operations.
type Manager struct {
	signer    *securecookie.SecureCookie // nil = no signing
	encrypter *securecookie.SecureCookie // nil = no encryption
	flash     *securecookie.SecureCookie
	domain    string
	path      string
	secure    bool
	httpOnly  bool
	sameSite  http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret derives the signing and encryption keys from secret.
// Secrets shorter than 32 bytes are ignored.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) < 32 {
			return
		}
		hashKey := []byte(secret)
		blockKey := sha256.Sum256(append([]byte("cookie-block:"), hashKey...))

		m.signer = securecookie.New(hashKey, nil).SetSerializer(securecookie.NopEncoder{})
		m.encrypter = securecookie.New(hashKey, blockKey[:]).SetSerializer(securecookie.NopEncoder{})
		m.flash = securecookie.New(hashKey, blockKey[:]).SetSerializer(securecookie.JSONEncoder{})
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) { m.domain = domain }
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) { m.path = path }
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.httpOnly = httpOnly }
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.sameSite = ss }
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetSigned returns a signed cookie value.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.signer == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	var value []byte
	if err := m.signer.Decode(name, raw, &value); err != nil {
		return "", errors.Join(ErrBadSig, err)
	}
	return string(value), nil
}

// SetSigned sets a cookie whose value is readable but tamper-evident.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.signer == nil {
		return ErrNoSecret
	}
	encoded, err := m.signer.Encode(name, []byte(value))
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
	return nil
}

// GetEncrypted returns an encrypted cookie value.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.encrypter == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	var value []byte
	if err := m.encrypter.Decode(name, raw, &value); err != nil {
		return "", errors.Join(ErrDecrypt, err)
	}
	return string(value), nil
}

// SetEncrypted sets an encrypted and authenticated cookie.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.encrypter == nil {
		return ErrNoSecret
	}
	encoded, err := m.encrypter.Encode(name, []byte(value))
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
	return nil
}

// Flash reads a flash value into dest and deletes it.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	if m.flash == nil {
		return ErrNoSecret
	}
	name := flashPrefix + key
	raw, err := m.Get(r, name)
	if err != nil {
		return err
	}
	m.Delete(w, name)

	if err := m.flash.Decode(name, raw, dest); err != nil {
		return errors.Join(ErrDecrypt, err)
	}
	return nil
}

// SetFlash stores value as a JSON-encoded, encrypted session cookie.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	if m.flash == nil {
		return ErrNoSecret
	}
	name := flashPrefix + key
	encoded, err := m.flash.Encode(name, value)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}
	http.SetCookie(w, m.cookie(name, encoded, 0))
	return nil
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   m.domain,
		Path:     m.path,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
