package goGuard

import (
	"context"
	"time"
)

const (
	eventLoginSuccess         = "login_success"
	eventLoginFailure         = "login_failure"
	eventCodeSuccess          = "code_success"
	eventCodeFailure          = "code_failure"
	eventCodeRejectedLocal    = "code_rejected_local"
	eventCredentialSaveFailed = "credential_save_failed"
	eventSessionCleared       = "session_cleared"
	eventProfileSaved         = "profile_saved"
	eventProfileSynced        = "profile_synced"
	eventProfileSyncFailed    = "profile_sync_failed"
	eventLogout               = "logout"
	eventLogoutNotifyFailed   = "logout_notify_failed"
	eventMFASetupStarted      = "mfa_setup_started"
	eventMFASetupVerified     = "mfa_setup_verified"
	eventMFASetupFailed       = "mfa_setup_failed"
	eventMFASetupCancelled    = "mfa_setup_cancelled"
)

func (e *Engine) emitEvent(
	ctx context.Context,
	eventType string,
	success bool,
	email string,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.events == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := SessionEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Email:     email,
		UserID:    userID,
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	e.events.Emit(ctx, event)
}
