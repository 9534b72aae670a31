package goGuard

import (
	"context"
	"errors"
	"testing"
)

func TestMFASetupHappyPath(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	setup := engine.NewMFASetup("new-admin@example.com")
	if setup.Step() != MFAStepIntro {
		t.Fatalf("initial step = %v", setup.Step())
	}

	if err := setup.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if setup.Step() != MFAStepProvisioned {
		t.Fatalf("step after Begin = %v", setup.Step())
	}
	if setup.QRCodeURL() == "" {
		t.Fatal("no QR code URL after provisioning")
	}

	// Secret is withheld until verification completes.
	if _, err := setup.Secret(); !errors.Is(err, ErrMFASecretNotVerified) {
		t.Fatalf("Secret before Done: %v", err)
	}

	if err := setup.AcknowledgeScan(); err != nil {
		t.Fatalf("AcknowledgeScan: %v", err)
	}
	setup.SetCode("123456")
	if err := setup.Verify(ctx); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if setup.Step() != MFAStepDone {
		t.Fatalf("step after Verify = %v", setup.Step())
	}

	secret, err := setup.Secret()
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if secret != "JBSWY3DPEHPK3PXP" {
		t.Fatalf("secret = %q", secret)
	}

	if _, _, _, _, generate, verifyMFA := stub.calls(); generate != 1 || verifyMFA != 1 {
		t.Fatalf("calls: generate=%d verifyMFA=%d", generate, verifyMFA)
	}
}

func TestMFASetupCodeFilter(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()

	setup := engine.NewMFASetup("a@b.c")

	tests := []struct {
		input string
		want  string
	}{
		{input: "123456", want: "123456"},
		{input: "12a34b56", want: "123456"},
		{input: "12 34-56", want: "123456"},
		{input: "12345678", want: "123456"},
		{input: "abc", want: ""},
	}
	for _, tt := range tests {
		setup.SetCode(tt.input)
		if got := setup.Code(); got != tt.want {
			t.Fatalf("SetCode(%q) -> %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMFASetupVerifyShortCodeLocal(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	setup := engine.NewMFASetup("a@b.c")
	if err := setup.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := setup.AcknowledgeScan(); err != nil {
		t.Fatalf("AcknowledgeScan: %v", err)
	}

	setup.SetCode("123")
	if err := setup.Verify(ctx); !errors.Is(err, ErrCodeLength) {
		t.Fatalf("Verify short code: %v", err)
	}
	if _, _, _, _, _, verifyMFA := stub.calls(); verifyMFA != 0 {
		t.Fatalf("verify-mfa calls = %d, want 0", verifyMFA)
	}
	if setup.Step() != MFAStepVerifying {
		t.Fatalf("step = %v", setup.Step())
	}
}

func TestMFASetupVerifyRejection(t *testing.T) {
	engine, stub, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	stub.mu.Lock()
	stub.mfaValid = false
	stub.mfaMessage = "code mismatch"
	stub.mu.Unlock()

	setup := engine.NewMFASetup("a@b.c")
	if err := setup.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := setup.AcknowledgeScan(); err != nil {
		t.Fatalf("AcknowledgeScan: %v", err)
	}
	setup.SetCode("111111")

	if err := setup.Verify(ctx); !errors.Is(err, ErrMFASetupRejected) {
		t.Fatalf("Verify: %v", err)
	}
	if setup.Step() != MFAStepVerifying {
		t.Fatalf("step = %v", setup.Step())
	}
	// Code is preserved for inspection until edited; editing clears the
	// inline error.
	if setup.Code() != "111111" {
		t.Fatalf("code = %q", setup.Code())
	}
	if setup.Err() == "" {
		t.Fatal("inline error not recorded")
	}
	setup.SetCode("111112")
	if setup.Err() != "" {
		t.Fatal("inline error survived code edit")
	}
}

func TestMFASetupOutOfOrder(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	setup := engine.NewMFASetup("a@b.c")

	if err := setup.AcknowledgeScan(); !errors.Is(err, ErrMFASetupState) {
		t.Fatalf("AcknowledgeScan at Intro: %v", err)
	}
	if err := setup.Verify(ctx); !errors.Is(err, ErrMFASetupState) {
		t.Fatalf("Verify at Intro: %v", err)
	}

	if err := setup.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := setup.Begin(ctx); !errors.Is(err, ErrMFASetupState) {
		t.Fatalf("second Begin: %v", err)
	}
}

func TestMFASetupCancelDiscardsEverything(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, nil)
	defer cleanup()
	ctx := context.Background()

	setup := engine.NewMFASetup("a@b.c")
	if err := setup.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := setup.AcknowledgeScan(); err != nil {
		t.Fatalf("AcknowledgeScan: %v", err)
	}
	setup.SetCode("123456")

	setup.Cancel()

	if setup.QRCodeURL() != "" || setup.Code() != "" {
		t.Fatal("wizard state survived Cancel")
	}
	if _, err := setup.Secret(); !errors.Is(err, ErrMFASetupCancelled) {
		t.Fatalf("Secret after Cancel: %v", err)
	}
	if err := setup.Verify(ctx); !errors.Is(err, ErrMFASetupCancelled) {
		t.Fatalf("Verify after Cancel: %v", err)
	}
	if err := setup.Begin(ctx); !errors.Is(err, ErrMFASetupCancelled) {
		t.Fatalf("Begin after Cancel: %v", err)
	}
}

func TestMFASetupRequiredRole(t *testing.T) {
	engine, _, cleanup := buildTestEngine(t, func(cfg *Config) {
		cfg.MFASetup.RequiredRole = "superadmin"
	})
	defer cleanup()
	ctx := context.Background()

	// Default cached profile carries the Administrator role.
	setup := engine.NewMFASetup("a@b.c")
	if err := setup.Begin(ctx); !errors.Is(err, ErrMFASetupRejected) {
		t.Fatalf("Begin without role: %v", err)
	}

	if _, err := engine.SaveProfile(ctx, ProfileUpdate{Role: strPtr("superadmin")}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	setup = engine.NewMFASetup("a@b.c")
	if err := setup.Begin(ctx); err != nil {
		t.Fatalf("Begin with role: %v", err)
	}
}
