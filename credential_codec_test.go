package goGuard

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "regular", email: "ops@example.com", password: "s3cret!"},
		{name: "empty email", email: "", password: "pw"},
		{name: "empty password", email: "ops@example.com", password: ""},
		{name: "unicode", email: "ऑप्स@example.com", password: "पासवर्ड"},
		{name: "dots in values", email: "a.b@c.d", password: "p.q.r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := EncodeCredentials(tt.email, tt.password, now)

			record := DecodeCredentials(token, now)
			if record == nil {
				t.Fatalf("DecodeCredentials returned nil for freshly encoded token")
			}
			if record.Email != tt.email {
				t.Fatalf("email = %q, want %q", record.Email, tt.email)
			}
			if record.Password != tt.password {
				t.Fatalf("password = %q, want %q", record.Password, tt.password)
			}
			if record.IssuedAt != now.UnixMilli() {
				t.Fatalf("iat = %d, want %d", record.IssuedAt, now.UnixMilli())
			}
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	now := time.Now()
	valid := EncodeCredentials("ops@example.com", "pw", now)
	segments := strings.Split(valid, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "plain text", token: "not-a-token"},
		{name: "two segments", token: segments[0] + "." + segments[1]},
		{name: "four segments", token: valid + ".extra"},
		{name: "checksum stripped", token: segments[0] + "." + segments[1] + "."},
		{name: "checksum wrong", token: segments[0] + "." + segments[1] + ".AAAA"},
		{name: "payload not base64", token: segments[0] + ".%%%." + segments[2]},
		{
			name: "payload not json",
			token: func() string {
				p := base64.StdEncoding.EncodeToString([]byte("not json"))
				return segments[0] + "." + p + "." + integritySegment(segments[0], p)
			}(),
		},
		{
			name: "payload json null",
			token: func() string {
				p := base64.StdEncoding.EncodeToString([]byte("null"))
				return segments[0] + "." + p + "." + integritySegment(segments[0], p)
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if record := DecodeCredentials(tt.token, now); record != nil {
				t.Fatalf("DecodeCredentials = %+v, want nil", record)
			}
		})
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	now := time.Now()
	token := EncodeCredentials("ops@example.com", "pw", now)
	segments := strings.Split(token, ".")

	// Swap the payload for one with a different password but keep the
	// original integrity segment. A single-character payload edit changes
	// the byte sum, so the integrity check must fail.
	forged := EncodeCredentials("ops@example.com", "pX", now)
	forgedPayload := strings.Split(forged, ".")[1]
	tampered := segments[0] + "." + forgedPayload + "." + segments[2]

	if tampered == token {
		t.Fatal("test setup: tampered token equals original")
	}
	if record := DecodeCredentials(tampered, now); record != nil {
		t.Fatalf("DecodeCredentials accepted tampered payload: %+v", record)
	}
}

func TestDecodeStaleness(t *testing.T) {
	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	token := EncodeCredentials("ops@example.com", "pw", issued)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "same instant", now: issued, want: true},
		{name: "29 days later", now: issued.Add(29 * 24 * time.Hour), want: true},
		{name: "exactly max age", now: issued.Add(DefaultCredentialMaxAge), want: true},
		{name: "just past max age", now: issued.Add(DefaultCredentialMaxAge + time.Millisecond), want: false},
		{name: "90 days later", now: issued.Add(90 * 24 * time.Hour), want: false},
		{name: "issued in the future", now: issued.Add(-time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := DecodeCredentials(token, tt.now)
			if got := record != nil; got != tt.want {
				t.Fatalf("decoded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeHeaderIsFixed(t *testing.T) {
	token := EncodeCredentials("a@b.c", "pw", time.Now())
	headerSeg := strings.Split(token, ".")[0]

	decoded, err := base64.StdEncoding.DecodeString(headerSeg)
	if err != nil {
		t.Fatalf("header segment not base64: %v", err)
	}
	if string(decoded) != `{"alg":"HS256","typ":"JWT"}` {
		t.Fatalf("header = %s", decoded)
	}
}
