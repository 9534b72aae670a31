package goGuard

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsAuthenticated describes the is-authenticated operation and its observable behavior.
//
// Presence of a non-empty session cookie is the entire check. Token
// contents are never inspected here; the remote API is the only party
// that can judge validity. Evaluate per request, never at process init.
//
// IsAuthenticated does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) IsAuthenticated(r *http.Request) bool {
	if e == nil || r == nil {
		return false
	}
	cookie, err := r.Cookie(e.config.Session.CookieName)
	return err == nil && cookie.Value != ""
}

// SetSessionCookie describes the set-session-cookie operation and its observable behavior.
//
// SetSessionCookie may return an error when input validation, dependency calls, or security checks fail.
// SetSessionCookie does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SetSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	if e == nil || w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     e.config.Session.CookieName,
		Value:    token,
		Path:     e.config.Session.Path,
		MaxAge:   int(maxAge.Seconds()),
		SameSite: e.config.Session.SameSite,
	})
}

// ClearSessionCookie describes the clear-session-cookie operation and its observable behavior.
//
// ClearSessionCookie may return an error when input validation, dependency calls, or security checks fail.
// ClearSessionCookie does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ClearSessionCookie(w http.ResponseWriter) {
	if e == nil || w == nil {
		return
	}
	expireCookie(w, e.config.Session.CookieName, e.config.Session.Path, e.config.Session.SameSite)
}

// SetRememberCookie describes the set-remember-cookie operation and its observable behavior.
//
// SetRememberCookie may return an error when input validation, dependency calls, or security checks fail.
// SetRememberCookie does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SetRememberCookie(w http.ResponseWriter) {
	if e == nil || w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     e.config.Session.RememberCookieName,
		Value:    "true",
		Path:     e.config.Session.Path,
		MaxAge:   int(e.config.Session.RememberTTL.Seconds()),
		SameSite: e.config.Session.SameSite,
	})
}

// ClearRememberCookie describes the clear-remember-cookie operation and its observable behavior.
//
// ClearRememberCookie may return an error when input validation, dependency calls, or security checks fail.
// ClearRememberCookie does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ClearRememberCookie(w http.ResponseWriter) {
	if e == nil || w == nil {
		return
	}
	expireCookie(w, e.config.Session.RememberCookieName, e.config.Session.Path, e.config.Session.SameSite)
}

func expireCookie(w http.ResponseWriter, name, path string, sameSite http.SameSite) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		SameSite: sameSite,
	})
}

// SessionInfo describes the session-info operation and its observable behavior.
//
// SessionInfo parses the token WITHOUT verifying its signature and is
// therefore display-only: show "signed in as", prefill a form. It must
// never gate access; the guard and the remote API do that.
//
// SessionInfo does not mutate shared global state and can be used concurrently.
func SessionInfo(token string) (*SessionClaims, bool) {
	if token == "" {
		return nil, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	info := &SessionClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}
