package goGuard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goGuard/gateway"
)

// stubAPI is a minimal in-process stand-in for the remote authentication
// API. Behavior is mutated per test; call counters verify which requests
// actually went out.
type stubAPI struct {
	mu sync.Mutex

	loginStatus   int
	loginMessage  string
	verifyStatus  int
	verifyMessage string
	token         string
	user          *gateway.User
	mfaValid      bool
	mfaMessage    string
	secret        string
	qrCodeURL     string

	loginCalls     int
	verifyCalls    int
	logoutCalls    int
	meCalls        int
	generateCalls  int
	verifyMFACalls int
}

func newStubAPI() *stubAPI {
	return &stubAPI{
		loginStatus:  http.StatusOK,
		verifyStatus: http.StatusOK,
		token:        "stub-token",
		mfaValid:     true,
		secret:       "JBSWY3DPEHPK3PXP",
		qrCodeURL:    "otpauth://totp/console:ops@example.com?secret=JBSWY3DPEHPK3PXP",
	}
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.loginCalls++
		if s.loginStatus < 200 || s.loginStatus > 299 {
			writeJSON(w, s.loginStatus, map[string]string{"message": s.loginMessage})
			return
		}
		writeJSON(w, s.loginStatus, map[string]string{"message": "code sent"})
	})
	mux.HandleFunc("/auth/verify-2fa", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.verifyCalls++
		if s.verifyStatus < 200 || s.verifyStatus > 299 {
			writeJSON(w, s.verifyStatus, map[string]string{"message": s.verifyMessage})
			return
		}
		writeJSON(w, s.verifyStatus, gateway.AuthResponse{Token: s.token, User: s.user})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logoutCalls++
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.meCalls++
		if s.user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "no session"})
			return
		}
		writeJSON(w, http.StatusOK, s.user)
	})
	mux.HandleFunc("/auth/generate-mfa", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.generateCalls++
		writeJSON(w, http.StatusOK, gateway.MFAProvision{Secret: s.secret, QRCodeURL: s.qrCodeURL})
	})
	mux.HandleFunc("/auth/verify-mfa", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.verifyMFACalls++
		writeJSON(w, http.StatusOK, gateway.AuthResponse{Valid: s.mfaValid, Message: s.mfaMessage})
	})
	return mux
}

func (s *stubAPI) calls() (login, verify, logout, me, generate, verifyMFA int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls, s.verifyCalls, s.logoutCalls, s.meCalls, s.generateCalls, s.verifyMFACalls
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// buildTestEngine wires a memory-backed engine against a stub remote API.
func buildTestEngine(t *testing.T, mutate func(*Config)) (*Engine, *stubAPI, func()) {
	t.Helper()

	stub := newStubAPI()
	server := httptest.NewServer(stub.handler())

	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = server.URL
	cfg.Gateway.DevMode = true
	cfg.AutoLogout.NotifyTimeout = 2 * time.Second
	if mutate != nil {
		mutate(&cfg)
	}

	engine, err := New().WithConfig(cfg).Build()
	if err != nil {
		server.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return engine, stub, func() {
		engine.Close()
		server.Close()
	}
}
