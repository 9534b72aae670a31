package goGuard

import (
	"context"
	"errors"
	"net/http"

	"github.com/MrEthical07/goGuard/internal/storage"
)

// SaveCredentials describes the save-credentials operation and its observable behavior.
//
// Write failures are swallowed: remembered credentials are a convenience,
// not a requirement, and a failing store must never break a login. A warn
// log and an event are the only traces.
//
// SaveCredentials does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SaveCredentials(ctx context.Context, email, password string) {
	if e == nil {
		return
	}

	token := EncodeCredentials(email, password, e.now())
	if err := e.store.Set(ctx, e.config.Credential.StorageKey, []byte(token), e.config.Credential.MaxAge); err != nil {
		e.metricInc(MetricCredentialSaveFailed)
		e.warnf("credential save failed: %v", err)
		e.emitEvent(ctx, eventCredentialSaveFailed, false, email, "", err, nil)
		return
	}
	if err := e.store.Set(ctx, e.config.Credential.RememberFlagKey, []byte("true"), e.config.Credential.MaxAge); err != nil {
		e.warnf("remember flag save failed: %v", err)
	}
	e.metricInc(MetricCredentialSave)
}

// LoadCredentials describes the load-credentials operation and its observable behavior.
//
// Every failure mode reads as "nothing remembered": missing key, store
// error, corrupt blob, stale record. Stale or corrupt blobs are removed
// lazily on read.
//
// LoadCredentials may return an error when input validation, dependency calls, or security checks fail.
// LoadCredentials does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LoadCredentials(ctx context.Context) *CredentialRecord {
	if e == nil {
		return nil
	}

	data, err := e.store.Get(ctx, e.config.Credential.StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.warnf("credential read failed: %v", err)
		}
		return nil
	}

	record := decodeCredentials(string(data), e.now(), e.config.Credential.MaxAge)
	if record == nil {
		e.metricInc(MetricCredentialStale)
		_ = e.store.Del(ctx, e.config.Credential.StorageKey)
		return nil
	}
	return record
}

// RememberMeEnabled describes the remember-me-enabled operation and its observable behavior.
//
// RememberMeEnabled may return an error when input validation, dependency calls, or security checks fail.
// RememberMeEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RememberMeEnabled(ctx context.Context) bool {
	if e == nil {
		return false
	}
	data, err := e.store.Get(ctx, e.config.Credential.RememberFlagKey)
	return err == nil && string(data) == "true"
}

// ClearSessionData describes the clear-session-data operation and its observable behavior.
//
// ClearSessionData removes the session cookie, the cached profile, and
// every legacy cleanup key. Unless preserveRememberMe is set, the
// credential key, the remember flag, and the remember cookie go with them;
// preserving keeps the remembered login usable for the next session. It
// always finishes with a profile-changed broadcast so listeners re-read
// whatever is left.
//
// ClearSessionData may return an error when input validation, dependency calls, or security checks fail.
// ClearSessionData does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ClearSessionData(ctx context.Context, w http.ResponseWriter, preserveRememberMe bool) {
	if e == nil {
		return
	}

	keys := []string{e.config.Profile.StorageKey}
	if !preserveRememberMe {
		keys = append(keys, e.config.Credential.StorageKey, e.config.Credential.RememberFlagKey)
	}
	keys = append(keys, e.config.Credential.LegacyKeys...)

	if err := e.store.Del(ctx, keys...); err != nil {
		e.warnf("session data clear failed: %v", err)
	}

	if w != nil {
		e.ClearSessionCookie(w)
		if !preserveRememberMe {
			e.ClearRememberCookie(w)
		}
	}

	e.metricInc(MetricSessionCleared)
	e.emitEvent(ctx, eventSessionCleared, true, "", "", nil, func() map[string]string {
		if preserveRememberMe {
			return map[string]string{"preserve_remember_me": "true"}
		}
		return nil
	})
	e.broadcaster.Signal()
}
