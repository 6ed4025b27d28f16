package cookies

import (
	"net/http"
	"time"
)

const (
	// CredentialName carries the credential token for browser clients
	// that opt into the restrictive cookie variant. The __Host- prefix
	// forbids a Domain attribute and requires Secure and Path=/.
	CredentialName = "__Host-credential"
)

// Options defines how credential cookies are issued.
type Options struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string // must stay empty for __Host- cookies
}

// normalize applies safe defaults without breaking callers
func (o Options) normalize() Options {
	if o.Path == "" {
		o.Path = "/" // required for __Host-
	}
	if !o.HttpOnly {
		o.HttpOnly = true
	}
	return o
}

// SetCredential issues the credential cookie to the client.
func SetCredential(w http.ResponseWriter, token string, expiresAt time.Time, opts Options) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CredentialName,
		Value:    token,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCredential removes the credential cookie from the client.
func ClearCredential(w http.ResponseWriter, opts Options) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CredentialName,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
