// Package gateway wraps outbound calls to the remote authentication API:
// login, one-time-code verification, logout, current-user lookup, and MFA
// material generation/verification.
//
// # Design
//
// The client normalizes the configured base URL once (trailing slashes
// trimmed; outside dev mode an /api suffix is appended when missing, the
// standard shape of our production deployments) and exposes one typed
// method per endpoint. Server rejections carry the response body's message
// when present, else a fixed fallback; transport failures collapse to
// [ErrConnection]. Callers are expected to treat both identically: stop,
// surface the message, do not proceed.
//
// # Architecture boundaries
//
// This package translates endpoint semantics into HTTP calls. It does NOT
// persist tokens, write cookies, or hold session state — the engine owns
// those.
//
// # What this package must NOT do
//
//   - Import goGuard (the root package imports gateway, never the reverse).
//   - Retry requests. Retry policy, where one exists, belongs to callers.
//   - Interpret token contents.
package gateway
