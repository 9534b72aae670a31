package test

import (
	"context"
	"net/http"
	"testing"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/middleware"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goGuard.New

	var _ *goGuard.Engine
	var _ goGuard.Config
	var _ goGuard.CredentialRecord
	var _ goGuard.UserProfile
	var _ goGuard.ProfileUpdate
	var _ *goGuard.LoginFlow
	var _ goGuard.LoginResult
	var _ *goGuard.MFASetup
	var _ goGuard.SessionEvent
	var _ goGuard.EventSink
	var _ goGuard.MetricsSnapshot

	var _ error = goGuard.ErrLoginRejected
	var _ error = goGuard.ErrCodeRejected
	var _ error = goGuard.ErrCodeLength
	var _ error = goGuard.ErrFlowState
	var _ error = goGuard.ErrStagingNotFound
	var _ error = goGuard.ErrMFASetupState
	var _ error = goGuard.ErrMFASetupRejected
	var _ error = goGuard.ErrMFASecretNotVerified

	var _ func(*goGuard.Engine) func(http.Handler) http.Handler = middleware.Guard

	var _ func(*goGuard.Engine, context.Context, string, string) = (*goGuard.Engine).SaveCredentials
	var _ func(*goGuard.Engine, context.Context) *goGuard.CredentialRecord = (*goGuard.Engine).LoadCredentials
	var _ func(*goGuard.Engine, context.Context) goGuard.UserProfile = (*goGuard.Engine).Profile
	var _ func(*goGuard.Engine, context.Context, string) (goGuard.UserProfile, error) = (*goGuard.Engine).SyncProfile
	var _ func(*goGuard.Engine) *goGuard.LoginFlow = (*goGuard.Engine).NewLoginFlow
	var _ func(*goGuard.Engine, string) *goGuard.MFASetup = (*goGuard.Engine).NewMFASetup
	var _ func(*goGuard.Engine, *http.Request) bool = (*goGuard.Engine).IsAuthenticated
	var _ func(*goGuard.Engine, http.ResponseWriter) = (*goGuard.Engine).LogoutNow
}
