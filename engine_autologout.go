package goGuard

import (
	"context"
	"net/http"
	"time"
)

// WatchTermination describes the watch-termination operation and its observable behavior.
//
// WatchTermination runs [Engine.LogoutNow] when ctx is cancelled, which is
// how process shutdown (signal.NotifyContext) maps onto "the session ends
// with the process". The watcher goroutine holds no resources beyond the
// subscription to ctx.
//
// WatchTermination may return an error when input validation, dependency calls, or security checks fail.
// WatchTermination does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) WatchTermination(ctx context.Context) {
	if e == nil || !e.config.AutoLogout.Enabled || ctx == nil {
		return
	}
	go func() {
		<-ctx.Done()
		e.LogoutNow(nil)
	}()
}

// LogoutNow describes the logout-now operation and its observable behavior.
//
// The server notify is fire-and-forget on a short-lived background context
// and is never waited on; local clearing runs synchronously and is never
// ordered after the notify. A dead server cannot keep a session alive
// locally.
//
// LogoutNow may return an error when input validation, dependency calls, or security checks fail.
// LogoutNow does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LogoutNow(w http.ResponseWriter) {
	if e == nil {
		return
	}

	timeout := e.config.AutoLogout.NotifyTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := e.gateway.Logout(nctx); err != nil {
			e.metricInc(MetricLogoutNotifyFailed)
			e.warnf("logout notify failed: %v", err)
			e.emitEvent(nctx, eventLogoutNotifyFailed, false, "", "", err, nil)
		}
	}()

	ctx := context.Background()
	e.ClearSessionData(ctx, w, false)
	e.emitEvent(ctx, eventLogout, true, "", "", nil, nil)
}
