package goGuard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/MrEthical07/goGuard/gateway"
	"github.com/google/uuid"
)

// LoginFlow defines a public type used by goGuard APIs.
//
// LoginFlow is the two-step login state machine: Idle until credentials
// are accepted, AwaitingCode until the one-time code is accepted,
// Authenticated after. Failure branches return to the prior state. A flow
// serves one login attempt sequence and is safe for concurrent use,
// though steps are inherently sequential.
type LoginFlow struct {
	engine *Engine

	mu       sync.Mutex
	state    LoginState
	flowID   string
	email    string
	remember bool
}

// NewLoginFlow describes the new-login-flow operation and its observable behavior.
//
// NewLoginFlow may return an error when input validation, dependency calls, or security checks fail.
// NewLoginFlow does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) NewLoginFlow() *LoginFlow {
	return &LoginFlow{
		engine: e,
		state:  LoginStateIdle,
		flowID: uuid.NewString(),
	}
}

// State describes the state operation and its observable behavior.
//
// State may return an error when input validation, dependency calls, or security checks fail.
// State does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f *LoginFlow) State() LoginState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Email describes the email operation and its observable behavior.
//
// After a rejected credential submission the email is preserved for
// resubmission while the password is gone; this asymmetry is deliberate.
//
// Email may return an error when input validation, dependency calls, or security checks fail.
// Email does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f *LoginFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// SubmitCredentials describes the submit-credentials operation and its observable behavior.
//
// On success the email is staged for the code step, credentials are saved
// when remember is set (otherwise any previously remembered state is
// cleared), and the flow advances to AwaitingCode. On rejection the flow
// stays Idle with the email preserved; the password is never retained
// beyond the request.
//
// SubmitCredentials may return an error when input validation, dependency calls, or security checks fail.
// SubmitCredentials does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f *LoginFlow) SubmitCredentials(ctx context.Context, email, password string, remember bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return ErrEngineNotReady
	}
	if f.state == LoginStateAuthenticated {
		return fmt.Errorf("%w: flow already authenticated", ErrFlowState)
	}

	e := f.engine
	f.email = email

	start := e.now()
	_, err := e.gateway.Login(ctx, email, password)
	e.metricObserve(MetricGatewayLatency, e.now().Sub(start))
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, "", err, nil)
		return loginStepError(ErrLoginRejected, err)
	}

	if err := e.staging.Stage(ctx, f.flowID, email, e.now()); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, false, email, "", err, nil)
		return err
	}

	if remember {
		e.SaveCredentials(ctx, email, password)
	} else {
		e.ClearSessionData(ctx, nil, false)
	}

	f.remember = remember
	f.state = LoginStateAwaitingCode
	e.metricInc(MetricLoginSuccess)
	e.emitEvent(ctx, eventLoginSuccess, true, email, "", nil, func() map[string]string {
		if remember {
			return map[string]string{"remember": "true"}
		}
		return nil
	})
	return nil
}

// SubmitCode describes the submit-code operation and its observable behavior.
//
// The code is validated locally first: anything that is not exactly the
// configured length is rejected without a network request. On success the
// session cookie is written with the fixed session TTL (remembered flows
// additionally get the remember marker cookie), the staged email is
// consumed, the response user is merged into the profile cache on a
// best-effort basis, and the flow advances to Authenticated. On rejection
// the flow stays AwaitingCode with the staged email intact for another
// attempt.
//
// SubmitCode may return an error when input validation, dependency calls, or security checks fail.
// SubmitCode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (f *LoginFlow) SubmitCode(ctx context.Context, w http.ResponseWriter, code string) (*LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.engine == nil {
		return nil, ErrEngineNotReady
	}
	if f.state != LoginStateAwaitingCode {
		return nil, fmt.Errorf("%w: code submitted before credentials accepted", ErrFlowState)
	}

	e := f.engine

	if len(code) != e.config.Login.CodeLength {
		e.metricInc(MetricCodeRejectedLocal)
		e.emitEvent(ctx, eventCodeRejectedLocal, false, f.email, "", ErrCodeLength, nil)
		return nil, ErrCodeLength
	}

	record, err := e.staging.Peek(ctx, f.flowID)
	if err != nil {
		return nil, err
	}

	start := e.now()
	resp, err := e.gateway.VerifyCode(ctx, record.Email, code)
	e.metricObserve(MetricGatewayLatency, e.now().Sub(start))
	if err != nil {
		e.metricInc(MetricCodeFailure)
		e.emitEvent(ctx, eventCodeFailure, false, record.Email, "", err, nil)
		return nil, loginStepError(ErrCodeRejected, err)
	}

	if w != nil {
		// The session cookie lifetime is fixed. Remember-me only marks the
		// browser and pre-fills the next login from the credential cache;
		// it never extends the session itself.
		e.SetSessionCookie(w, resp.Token, e.config.Session.TTL)
		if f.remember {
			e.SetRememberCookie(w)
		}
	}

	_, _ = e.staging.Consume(ctx, f.flowID)

	if resp.User != nil {
		merged := applyProfileUpdate(e.Profile(ctx), profileUpdateFromUser(resp.User))
		if err := e.persistProfile(ctx, merged); err != nil {
			e.warnf("profile merge after login failed: %v", err)
		} else {
			e.broadcaster.Signal()
		}
	}

	f.state = LoginStateAuthenticated
	userID := ""
	if resp.User != nil {
		userID = resp.User.ID
	}
	e.metricInc(MetricCodeSuccess)
	e.emitEvent(ctx, eventCodeSuccess, true, record.Email, userID, nil, nil)

	return &LoginResult{Token: resp.Token, User: resp.User}, nil
}

// loginStepError keeps the transport/reject distinction intact while
// tagging the error with the step's sentinel. Connection failures pass
// through untagged; callers treat both as "do not proceed".
func loginStepError(sentinel error, err error) error {
	var rejected *gateway.RejectedError
	if errors.As(err, &rejected) {
		return fmt.Errorf("%w: %s", sentinel, rejected.Message)
	}
	return err
}
