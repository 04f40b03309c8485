package auth

import (
	"net/http"
	"time"
)

func (m *Manager) CookieName() string { return m.cookieName }

// SetCookie writes the session cookie for s.
func (m *Manager) SetCookie(w http.ResponseWriter, s Session) {
	http.SetCookie(w, m.cookie(s.Token, s.ExpiresAt, 0))
}

// ClearCookie overwrites the session cookie with an expired one.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", time.Unix(0, 0), -1))
}

// TokenFromRequest returns the session token sent with r, or "".
func (m *Manager) TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if m.cookieSecure {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
