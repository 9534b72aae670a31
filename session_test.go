package goGuard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIsAuthenticated(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{name: "no cookie", cookie: nil, want: false},
		{name: "empty value", cookie: &http.Cookie{Name: "auth_token", Value: ""}, want: false},
		{name: "present", cookie: &http.Cookie{Name: "auth_token", Value: "anything"}, want: true},
		{name: "wrong name", cookie: &http.Cookie{Name: "other", Value: "anything"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			if got := engine.IsAuthenticated(r); got != tt.want {
				t.Fatalf("IsAuthenticated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()

	rec := httptest.NewRecorder()
	engine.SetSessionCookie(rec, "tok", 24*time.Hour)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "auth_token" || c.Value != "tok" {
		t.Fatalf("cookie = %+v", c)
	}
	if c.Path != "/" {
		t.Fatalf("path = %q", c.Path)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("samesite = %v", c.SameSite)
	}
	if c.MaxAge != 24*60*60 {
		t.Fatalf("maxage = %d", c.MaxAge)
	}
}

func TestClearSessionCookieExpires(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()

	rec := httptest.NewRecorder()
	engine.ClearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookie not expired: %+v", cookies)
	}
}

func TestSessionInfo(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "asha@example.com",
		"iat":   1700000000,
		"exp":   1700086400,
	}).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, ok := SessionInfo(token)
	if !ok {
		t.Fatal("SessionInfo rejected well-formed token")
	}
	if claims.Subject != "u1" || claims.Email != "asha@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.IssuedAt.Unix() != 1700000000 {
		t.Fatalf("iat = %v", claims.IssuedAt)
	}
	if claims.ExpiresAt.Unix() != 1700086400 {
		t.Fatalf("exp = %v", claims.ExpiresAt)
	}
}

func TestSessionInfoOpaqueToken(t *testing.T) {
	tests := []string{"", "not-a-jwt", "a.b", "a.b.c"}
	for _, token := range tests {
		if claims, ok := SessionInfo(token); ok {
			t.Fatalf("SessionInfo(%q) = %+v, want rejection", token, claims)
		}
	}
}
