package goGuard

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the session engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrLoginRejected is an exported constant or variable used by the session engine.
	ErrLoginRejected = errors.New("login rejected")
	// ErrCodeRejected is an exported constant or variable used by the session engine.
	ErrCodeRejected = errors.New("verification code rejected")
	// ErrCodeLength is an exported constant or variable used by the session engine.
	ErrCodeLength = errors.New("verification code has the wrong length")
	// ErrFlowState is an exported constant or variable used by the session engine.
	ErrFlowState = errors.New("login flow step out of order")
	// ErrStagingNotFound is an exported constant or variable used by the session engine.
	ErrStagingNotFound = errors.New("staged login not found")
	// ErrStagingExpired is an exported constant or variable used by the session engine.
	ErrStagingExpired = errors.New("staged login expired")
	// ErrStagingUnavailable is an exported constant or variable used by the session engine.
	ErrStagingUnavailable = errors.New("staging backend unavailable")
	// ErrStoreUnavailable is an exported constant or variable used by the session engine.
	ErrStoreUnavailable = errors.New("local store backend unavailable")
	// ErrMFASetupState is an exported constant or variable used by the session engine.
	ErrMFASetupState = errors.New("mfa setup step out of order")
	// ErrMFASetupRejected is an exported constant or variable used by the session engine.
	ErrMFASetupRejected = errors.New("mfa setup rejected")
	// ErrMFASetupCancelled is an exported constant or variable used by the session engine.
	ErrMFASetupCancelled = errors.New("mfa setup cancelled")
	// ErrMFASecretNotVerified is an exported constant or variable used by the session engine.
	ErrMFASecretNotVerified = errors.New("mfa secret not verified yet")
)
