package goGuard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/goGuard/gateway"
	"github.com/MrEthical07/goGuard/internal/storage"
)

// Profile describes the profile operation and its observable behavior.
//
// Resolution order: stored profile, then a profile derived from cached
// credentials, then the fixed default. Profile is side-effect-free; it
// never writes, even when the stored blob is unreadable.
//
// Profile may return an error when input validation, dependency calls, or security checks fail.
// Profile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Profile(ctx context.Context) UserProfile {
	if e == nil {
		return UserProfile{}
	}

	if data, err := e.store.Get(ctx, e.config.Profile.StorageKey); err == nil {
		var profile UserProfile
		if json.Unmarshal(data, &profile) == nil && (profile.Name != "" || profile.Email != "") {
			return profile
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		e.warnf("profile read failed: %v", err)
	}

	if data, err := e.store.Get(ctx, e.config.Credential.StorageKey); err == nil {
		if record := decodeCredentials(string(data), e.now(), e.config.Credential.MaxAge); record != nil && record.Email != "" {
			return UserProfile{
				Name:  displayNameFromEmail(record.Email),
				Email: record.Email,
				Bio:   e.config.Profile.DerivedBio,
				Role:  e.config.Profile.DefaultRole,
			}
		}
	}

	return UserProfile{
		Name:  e.config.Profile.DefaultName,
		Email: e.config.Profile.DefaultEmail,
		Role:  e.config.Profile.DefaultRole,
	}
}

// SaveProfile describes the save-profile operation and its observable behavior.
//
// Each write is a shallow merge onto the current resolved profile, never a
// replace. Racing writers are last-write-wins at the store; because every
// write merges first, an interleaved lost field is an accepted outcome.
//
// SaveProfile may return an error when input validation, dependency calls, or security checks fail.
// SaveProfile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SaveProfile(ctx context.Context, partial ProfileUpdate) (UserProfile, error) {
	if e == nil {
		return UserProfile{}, ErrEngineNotReady
	}

	merged := applyProfileUpdate(e.Profile(ctx), partial)
	if err := e.persistProfile(ctx, merged); err != nil {
		return merged, err
	}

	e.metricInc(MetricProfileSave)
	e.emitEvent(ctx, eventProfileSaved, true, merged.Email, merged.ID, nil, nil)
	e.broadcaster.Signal()
	return merged, nil
}

// ClearProfile describes the clear-profile operation and its observable behavior.
//
// ClearProfile may return an error when input validation, dependency calls, or security checks fail.
// ClearProfile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ClearProfile(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if err := e.store.Del(ctx, e.config.Profile.StorageKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	e.broadcaster.Signal()
	return nil
}

// SyncProfile describes the sync-profile operation and its observable behavior.
//
// SyncProfile fetches the current user from the remote API with the given
// session token and merges the response into the cached profile. Use it
// for an explicit "refresh from server", not on every read.
//
// SyncProfile may return an error when input validation, dependency calls, or security checks fail.
// SyncProfile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SyncProfile(ctx context.Context, token string) (UserProfile, error) {
	if e == nil {
		return UserProfile{}, ErrEngineNotReady
	}

	start := e.now()
	user, err := e.gateway.Me(ctx, token)
	e.metricObserve(MetricGatewayLatency, e.now().Sub(start))
	if err != nil {
		e.metricInc(MetricProfileSyncFailed)
		e.emitEvent(ctx, eventProfileSyncFailed, false, "", "", err, nil)
		return UserProfile{}, err
	}

	merged := applyProfileUpdate(e.Profile(ctx), profileUpdateFromUser(user))
	if err := e.persistProfile(ctx, merged); err != nil {
		return merged, err
	}

	e.metricInc(MetricProfileSync)
	e.emitEvent(ctx, eventProfileSynced, true, merged.Email, merged.ID, nil, nil)
	e.broadcaster.Signal()
	return merged, nil
}

// SubscribeProfileChanges describes the subscribe-profile-changes operation and its observable behavior.
//
// The signal is payload-free and advisory: a pending, undelivered signal
// absorbs later ones, so listeners must re-read state rather than count
// notifications. The returned cancel func must be called when the listener
// goes away.
//
// SubscribeProfileChanges may return an error when input validation, dependency calls, or security checks fail.
// SubscribeProfileChanges does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SubscribeProfileChanges() (<-chan struct{}, func()) {
	if e == nil || e.broadcaster == nil {
		ch := make(chan struct{})
		close(ch)
		return ch, func() {}
	}
	return e.broadcaster.Subscribe()
}

func (e *Engine) persistProfile(ctx context.Context, profile UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := e.store.Set(ctx, e.config.Profile.StorageKey, data, 0); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func applyProfileUpdate(base UserProfile, partial ProfileUpdate) UserProfile {
	if partial.ID != nil {
		base.ID = *partial.ID
	}
	if partial.Name != nil {
		base.Name = *partial.Name
	}
	if partial.Email != nil {
		base.Email = *partial.Email
	}
	if partial.Bio != nil {
		base.Bio = *partial.Bio
	}
	if partial.AvatarURL != nil {
		base.AvatarURL = *partial.AvatarURL
	}
	if partial.Role != nil {
		base.Role = *partial.Role
	}
	return base
}

// profileUpdateFromUser maps a remote user object onto a partial update.
// Empty response fields stay nil so a sparse server payload cannot wipe
// locally known values.
func profileUpdateFromUser(user *gateway.User) ProfileUpdate {
	var update ProfileUpdate
	if user == nil {
		return update
	}
	if user.ID != "" {
		update.ID = &user.ID
	}
	if user.Name != "" {
		update.Name = &user.Name
	}
	if user.Email != "" {
		update.Email = &user.Email
	}
	if user.Bio != "" {
		update.Bio = &user.Bio
	}
	if user.AvatarURL != "" {
		update.AvatarURL = &user.AvatarURL
	}
	if user.Role != "" {
		update.Role = &user.Role
	}
	return update
}

// displayNameFromEmail capitalizes the email local part: "ravi@x.com"
// becomes "Ravi".
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return local
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
