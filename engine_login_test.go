package goGuard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrEthical07/goGuard/gateway"
)

func TestLoginFlowHappyPath(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	stub.mu.Lock()
	stub.user = &gateway.User{ID: "u1", Name: "Asha Rao", Email: "asha@example.com"}
	stub.mu.Unlock()

	flow := engine.NewLoginFlow()
	if flow.State() != LoginStateIdle {
		t.Fatalf("initial state = %v", flow.State())
	}

	if err := flow.SubmitCredentials(ctx, "asha@example.com", "pw", false); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if flow.State() != LoginStateAwaitingCode {
		t.Fatalf("state after credentials = %v", flow.State())
	}

	rec := httptest.NewRecorder()
	result, err := flow.SubmitCode(ctx, rec, "123456")
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if flow.State() != LoginStateAuthenticated {
		t.Fatalf("state after code = %v", flow.State())
	}
	if result.Token != "stub-token" {
		t.Fatalf("token = %q", result.Token)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == engine.config.Session.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not set")
	}
	if sessionCookie.Value != "stub-token" {
		t.Fatalf("cookie value = %q", sessionCookie.Value)
	}
	if want := int((24 * 60 * 60)); sessionCookie.MaxAge != want {
		t.Fatalf("cookie MaxAge = %d, want %d", sessionCookie.MaxAge, want)
	}

	// The response user was merged into the profile cache.
	profile := engine.Profile(ctx)
	if profile.Name != "Asha Rao" {
		t.Fatalf("profile after login = %+v", profile)
	}
}

func TestLoginFlowRememberMe(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	flow := engine.NewLoginFlow()
	if err := flow.SubmitCredentials(ctx, "asha@example.com", "pw", true); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}

	// Credentials were remembered at the credential step.
	record := engine.LoadCredentials(ctx)
	if record == nil || record.Email != "asha@example.com" {
		t.Fatalf("credentials not saved: %+v", record)
	}

	rec := httptest.NewRecorder()
	if _, err := flow.SubmitCode(ctx, rec, "123456"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}

	var session, remember *http.Cookie
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case engine.config.Session.CookieName:
			session = c
		case engine.config.Session.RememberCookieName:
			remember = c
		}
	}
	if session == nil || remember == nil {
		t.Fatalf("cookies missing: session=%v remember=%v", session, remember)
	}
	// Remember-me never stretches the session itself: the cookie keeps the
	// fixed session lifetime and only the remember marker is long-lived.
	if want := int(engine.config.Session.TTL.Seconds()); session.MaxAge != want {
		t.Fatalf("session MaxAge = %d, want %d", session.MaxAge, want)
	}
	if want := int(engine.config.Session.RememberTTL.Seconds()); remember.MaxAge != want {
		t.Fatalf("remember MaxAge = %d, want %d", remember.MaxAge, want)
	}
}

func TestLoginFlowNoRememberClearsSavedState(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	engine.SaveCredentials(ctx, "old@example.com", "oldpw")

	flow := engine.NewLoginFlow()
	if err := flow.SubmitCredentials(ctx, "asha@example.com", "pw", false); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}

	if record := engine.LoadCredentials(ctx); record != nil {
		t.Fatalf("stale credentials survived un-remembered login: %+v", record)
	}
}

func TestLoginFlowRejectionPreservesEmail(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	stub.mu.Lock()
	stub.loginStatus = http.StatusUnauthorized
	stub.loginMessage = "Invalid credentials"
	stub.mu.Unlock()

	flow := engine.NewLoginFlow()
	err := flow.SubmitCredentials(ctx, "asha@example.com", "wrong", false)
	if err == nil {
		t.Fatal("SubmitCredentials succeeded against rejecting server")
	}
	if !errors.Is(err, ErrLoginRejected) {
		t.Fatalf("error = %v, want ErrLoginRejected", err)
	}
	if flow.State() != LoginStateIdle {
		t.Fatalf("state after rejection = %v", flow.State())
	}
	if flow.Email() != "asha@example.com" {
		t.Fatalf("email not preserved: %q", flow.Email())
	}
}

func TestLoginFlowServerRejectMessageSurfaced(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()

	stub.mu.Lock()
	stub.loginStatus = http.StatusForbidden
	stub.loginMessage = "" // no message in body: fixed fallback
	stub.mu.Unlock()

	flow := engine.NewLoginFlow()
	err := flow.SubmitCredentials(context.Background(), "a@b.c", "pw", false)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if got := err.Error(); !strings.Contains(got, gateway.FallbackMessage) {
		t.Fatalf("error %q does not carry fallback message", got)
	}
}

func TestSubmitCodeLocalValidation(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "too short", code: "12345"},
		{name: "too long", code: "1234567"},
		{name: "empty", code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, stub, cleanup := buildTestEngine(t, nil)
			defer cleanup()
			ctx := context.Background()

			flow := engine.NewLoginFlow()
			if err := flow.SubmitCredentials(ctx, "a@b.c", "pw", false); err != nil {
				t.Fatalf("SubmitCredentials: %v", err)
			}

			_, err := flow.SubmitCode(ctx, httptest.NewRecorder(), tt.code)
			if !errors.Is(err, ErrCodeLength) {
				t.Fatalf("error = %v, want ErrCodeLength", err)
			}

			// No verify request went out.
			if _, verify, _, _, _, _ := stub.calls(); verify != 0 {
				t.Fatalf("verify calls = %d, want 0", verify)
			}
			if flow.State() != LoginStateAwaitingCode {
				t.Fatalf("state = %v, want AwaitingCode", flow.State())
			}
		})
	}
}

func TestSubmitCodeSixDigitsReachesServer(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	flow := engine.NewLoginFlow()
	if err := flow.SubmitCredentials(ctx, "a@b.c", "pw", false); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if _, err := flow.SubmitCode(ctx, httptest.NewRecorder(), "654321"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}

	if _, verify, _, _, _, _ := stub.calls(); verify != 1 {
		t.Fatalf("verify calls = %d, want 1", verify)
	}
}

func TestSubmitCodeRejectionKeepsStagedEmail(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	flow := engine.NewLoginFlow()
	if err := flow.SubmitCredentials(ctx, "a@b.c", "pw", false); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}

	stub.mu.Lock()
	stub.verifyStatus = http.StatusUnauthorized
	stub.verifyMessage = "Invalid code"
	stub.mu.Unlock()

	if _, err := flow.SubmitCode(ctx, httptest.NewRecorder(), "000000"); !errors.Is(err, ErrCodeRejected) {
		t.Fatalf("error = %v, want ErrCodeRejected", err)
	}
	if flow.State() != LoginStateAwaitingCode {
		t.Fatalf("state = %v", flow.State())
	}

	// The staged email survived; a corrected code succeeds.
	stub.mu.Lock()
	stub.verifyStatus = http.StatusOK
	stub.mu.Unlock()

	if _, err := flow.SubmitCode(ctx, httptest.NewRecorder(), "123456"); err != nil {
		t.Fatalf("retry SubmitCode: %v", err)
	}
}

func TestSubmitCodeBeforeCredentials(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()

	flow := engine.NewLoginFlow()
	if _, err := flow.SubmitCode(context.Background(), httptest.NewRecorder(), "123456"); !errors.Is(err, ErrFlowState) {
		t.Fatalf("error = %v, want ErrFlowState", err)
	}
}

func TestSubmitCredentialsAfterAuthenticated(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	flow := engine.NewLoginFlow()
	if err := flow.SubmitCredentials(ctx, "a@b.c", "pw", false); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if _, err := flow.SubmitCode(ctx, httptest.NewRecorder(), "123456"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if err := flow.SubmitCredentials(ctx, "a@b.c", "pw", false); !errors.Is(err, ErrFlowState) {
		t.Fatalf("error = %v, want ErrFlowState", err)
	}
}
