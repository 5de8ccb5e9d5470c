// Package mw provides HTTP middleware shared by the flow server and the
// examples.
package mw

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	httphelper "github.com/norlig/bankid/pkg/http"
)

const (
	// DefaultCSRFCookieName is readable by scripts so its value can be
	// repeated in the request header (double submit).
	DefaultCSRFCookieName = "bankid.csrf"
	DefaultCSRFHeaderName = "X-CSRF-Token"
)

// CSRF implements double submit cookie protection for state changing
// requests: safe methods are issued an authenticated random token in a
// cookie, unsafe methods must repeat the raw cookie value in a header.
type CSRF struct {
	cookies    *httphelper.CookieHandler
	cookieName string
	headerName string
}

func NewCSRF(cookies *httphelper.CookieHandler) *CSRF {
	return &CSRF{
		cookies:    cookies,
		cookieName: DefaultCSRFCookieName,
		headerName: DefaultCSRFHeaderName,
	}
}

func (c *CSRF) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if _, err := c.cookies.CheckCookie(r, c.cookieName); err != nil {
				if err := c.issueToken(w); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
			}
		default:
			if _, err := c.cookies.CheckHeaderCookie(r, c.cookieName, c.headerName); err != nil {
				http.Error(w, "anti-forgery token missing or invalid", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (c *CSRF) issueToken(w http.ResponseWriter) error {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return err
	}
	return c.cookies.SetCookie(w, c.cookieName, base64.RawURLEncoding.EncodeToString(token))
}
