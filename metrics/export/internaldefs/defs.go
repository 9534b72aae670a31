package internaldefs

import (
	goGuard "github.com/MrEthical07/goGuard"
)

// CounterDef defines a public type used by goGuard APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goGuard APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goGuard.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session engine.
var CounterDefs = []CounterDef{
	{ID: goGuard.MetricLoginSuccess, Name: "goguard_login_success_total", Help: "Accepted credential submissions."},
	{ID: goGuard.MetricLoginFailure, Name: "goguard_login_failure_total", Help: "Rejected or failed credential submissions."},
	{ID: goGuard.MetricCodeSuccess, Name: "goguard_code_success_total", Help: "Accepted one-time codes."},
	{ID: goGuard.MetricCodeFailure, Name: "goguard_code_failure_total", Help: "Rejected or failed one-time codes."},
	{ID: goGuard.MetricCodeRejectedLocal, Name: "goguard_code_rejected_local_total", Help: "One-time codes rejected locally before any request."},
	{ID: goGuard.MetricGuardAllowed, Name: "goguard_guard_allowed_total", Help: "Requests passed through by the route guard."},
	{ID: goGuard.MetricGuardRedirectLogin, Name: "goguard_guard_redirect_login_total", Help: "Route-guard redirects to the login page."},
	{ID: goGuard.MetricGuardRedirectDashboard, Name: "goguard_guard_redirect_dashboard_total", Help: "Route-guard redirects to the dashboard."},
	{ID: goGuard.MetricGuardSkipped, Name: "goguard_guard_skipped_total", Help: "Requests bypassing the route guard via the exclusion list."},
	{ID: goGuard.MetricCredentialSave, Name: "goguard_credential_save_total", Help: "Credential cache writes."},
	{ID: goGuard.MetricCredentialSaveFailed, Name: "goguard_credential_save_failed_total", Help: "Swallowed credential cache write failures."},
	{ID: goGuard.MetricCredentialStale, Name: "goguard_credential_stale_total", Help: "Credential records discarded as stale or corrupt on read."},
	{ID: goGuard.MetricProfileSave, Name: "goguard_profile_save_total", Help: "Profile cache merge writes."},
	{ID: goGuard.MetricProfileSync, Name: "goguard_profile_sync_total", Help: "Successful profile refreshes from the remote API."},
	{ID: goGuard.MetricProfileSyncFailed, Name: "goguard_profile_sync_failed_total", Help: "Failed profile refreshes from the remote API."},
	{ID: goGuard.MetricSessionCleared, Name: "goguard_session_cleared_total", Help: "Session data clear operations."},
	{ID: goGuard.MetricLogoutNotifyFailed, Name: "goguard_logout_notify_failed_total", Help: "Swallowed server logout notify failures."},
	{ID: goGuard.MetricMFASetupStarted, Name: "goguard_mfa_setup_started_total", Help: "MFA setup wizards that obtained provisioning material."},
	{ID: goGuard.MetricMFASetupVerified, Name: "goguard_mfa_setup_verified_total", Help: "MFA setup wizards completed with a verified code."},
	{ID: goGuard.MetricMFASetupFailed, Name: "goguard_mfa_setup_failed_total", Help: "Failed MFA setup steps."},
	{ID: goGuard.MetricMFASetupCancelled, Name: "goguard_mfa_setup_cancelled_total", Help: "Cancelled MFA setup wizards."},
}

// HistogramDefs is an exported constant or variable used by the session engine.
var HistogramDefs = []HistogramDef{
	{ID: goGuard.MetricGatewayLatency, Name: "goguard_gateway_latency_seconds", Help: "Remote API round-trip latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
