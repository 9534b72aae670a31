package goGuard

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MFASetup defines a public type used by goGuard APIs.
//
// MFASetup is the four-step provisioning wizard: Intro until material is
// generated, Provisioned until the operator confirms the code was scanned,
// Verifying until a code proves the scan, Done after. All state is held in
// memory only; Cancel at any step discards everything, so whatever the
// caller deferred until completion (typically account creation) never
// happens.
type MFASetup struct {
	engine *Engine

	mu        sync.Mutex
	step      MFASetupStep
	email     string
	secret    string
	qrCodeURL string
	code      string
	inlineErr string
	cancelled bool
}

// NewMFASetup describes the new-mfa-setup operation and its observable behavior.
//
// NewMFASetup may return an error when input validation, dependency calls, or security checks fail.
// NewMFASetup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) NewMFASetup(email string) *MFASetup {
	return &MFASetup{
		engine: e,
		step:   MFAStepIntro,
		email:  email,
	}
}

// Step describes the step operation and its observable behavior.
//
// Step may return an error when input validation, dependency calls, or security checks fail.
// Step does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Step() MFASetupStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Err describes the err operation and its observable behavior.
//
// Err returns the inline error message of the most recent failed step, or
// the empty string. Editing the code clears it.
//
// Err may return an error when input validation, dependency calls, or security checks fail.
// Err does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inlineErr
}

// QRCodeURL describes the qr-code-url operation and its observable behavior.
//
// QRCodeURL may return an error when input validation, dependency calls, or security checks fail.
// QRCodeURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) QRCodeURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qrCodeURL
}

// Code describes the code operation and its observable behavior.
//
// Code may return an error when input validation, dependency calls, or security checks fail.
// Code does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Begin describes the begin operation and its observable behavior.
//
// Begin requests provisioning material from the remote API and advances
// Intro to Provisioned. On failure the wizard stays at Intro with the
// error recorded inline; there is no automatic retry, the operator calls
// Begin again.
//
// Begin may return an error when input validation, dependency calls, or security checks fail.
// Begin does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Begin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStep(MFAStepIntro); err != nil {
		return err
	}
	e := s.engine
	if e == nil {
		return ErrEngineNotReady
	}

	if required := e.config.MFASetup.RequiredRole; required != "" {
		if !strings.EqualFold(e.Profile(ctx).Role, required) {
			err := fmt.Errorf("%w: requires role %q", ErrMFASetupRejected, required)
			s.inlineErr = err.Error()
			return err
		}
	}

	start := e.now()
	provision, err := e.gateway.GenerateMFA(ctx, s.email)
	e.metricObserve(MetricGatewayLatency, e.now().Sub(start))
	if err != nil {
		s.inlineErr = err.Error()
		e.metricInc(MetricMFASetupFailed)
		e.emitEvent(ctx, eventMFASetupFailed, false, s.email, "", err, nil)
		return err
	}

	s.secret = provision.Secret
	s.qrCodeURL = provision.QRCodeURL
	s.inlineErr = ""
	s.step = MFAStepProvisioned
	e.metricInc(MetricMFASetupStarted)
	e.emitEvent(ctx, eventMFASetupStarted, true, s.email, "", nil, nil)
	return nil
}

// AcknowledgeScan describes the acknowledge-scan operation and its observable behavior.
//
// AcknowledgeScan may return an error when input validation, dependency calls, or security checks fail.
// AcknowledgeScan does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) AcknowledgeScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStep(MFAStepProvisioned); err != nil {
		return err
	}
	s.step = MFAStepVerifying
	return nil
}

// SetCode describes the set-code operation and its observable behavior.
//
// SetCode applies the digits-only input filter: non-digit characters are
// dropped and the result is truncated to the configured code length. Any
// edit clears the inline error.
//
// SetCode may return an error when input validation, dependency calls, or security checks fail.
// SetCode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) SetCode(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled || s.step == MFAStepDone {
		return
	}

	maxLen := 6
	if s.engine != nil && s.engine.config.MFASetup.CodeLength > 0 {
		maxLen = s.engine.config.MFASetup.CodeLength
	}

	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == maxLen {
			break
		}
	}
	s.code = b.String()
	s.inlineErr = ""
}

// Verify describes the verify operation and its observable behavior.
//
// Verify checks the entered code against the provisioned secret via the
// remote API and advances Verifying to Done. A short code is rejected
// locally without a request. On failure the wizard stays at Verifying with
// the code preserved until the operator edits it.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Verify(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStep(MFAStepVerifying); err != nil {
		return err
	}
	e := s.engine
	if e == nil {
		return ErrEngineNotReady
	}

	if len(s.code) != e.config.MFASetup.CodeLength {
		s.inlineErr = ErrCodeLength.Error()
		return ErrCodeLength
	}

	start := e.now()
	resp, err := e.gateway.VerifyMFA(ctx, s.secret, s.code)
	e.metricObserve(MetricGatewayLatency, e.now().Sub(start))
	if err != nil {
		s.inlineErr = err.Error()
		e.metricInc(MetricMFASetupFailed)
		e.emitEvent(ctx, eventMFASetupFailed, false, s.email, "", err, nil)
		return loginStepError(ErrMFASetupRejected, err)
	}
	if !resp.Valid {
		message := resp.Message
		if message == "" {
			message = "invalid verification code"
		}
		rejection := fmt.Errorf("%w: %s", ErrMFASetupRejected, message)
		s.inlineErr = rejection.Error()
		e.metricInc(MetricMFASetupFailed)
		e.emitEvent(ctx, eventMFASetupFailed, false, s.email, "", rejection, nil)
		return rejection
	}

	s.inlineErr = ""
	s.step = MFAStepDone
	e.metricInc(MetricMFASetupVerified)
	e.emitEvent(ctx, eventMFASetupVerified, true, s.email, "", nil, nil)
	return nil
}

// Secret describes the secret operation and its observable behavior.
//
// The secret is released only once the wizard reaches Done; an unverified
// secret never leaves the wizard.
//
// Secret may return an error when input validation, dependency calls, or security checks fail.
// Secret does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Secret() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return "", ErrMFASetupCancelled
	}
	if s.step != MFAStepDone {
		return "", ErrMFASecretNotVerified
	}
	return s.secret, nil
}

// Cancel describes the cancel operation and its observable behavior.
//
// Cancel discards every piece of wizard state at any step: secret, code,
// scan image reference, inline error. After Cancel all operations return
// [ErrMFASetupCancelled].
//
// Cancel may return an error when input validation, dependency calls, or security checks fail.
// Cancel does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *MFASetup) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}
	s.cancelled = true
	s.secret = ""
	s.qrCodeURL = ""
	s.code = ""
	s.inlineErr = ""

	if s.engine != nil {
		s.engine.metricInc(MetricMFASetupCancelled)
		s.engine.emitEvent(context.Background(), eventMFASetupCancelled, true, s.email, "", nil, nil)
	}
}

func (s *MFASetup) ensureStep(want MFASetupStep) error {
	if s.cancelled {
		return ErrMFASetupCancelled
	}
	if s.step != want {
		return fmt.Errorf("%w: at step %d, operation requires step %d", ErrMFASetupState, s.step, want)
	}
	return nil
}
