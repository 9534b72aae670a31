// Package goGuard provides the client-facing session layer of a locale-aware
// administrative web console: a remembered-credential cache, a cached user
// profile with change broadcasting, opaque session-cookie handling, an
// auth-fetch gateway to the remote authentication API, an edge route guard,
// an auto-logout watcher, and the two-step login / MFA-setup state machines.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goGuard is the public surface. It exposes [Engine], [Builder], [Config],
// [LoginFlow], [MFASetup], and value types (CredentialRecord, UserProfile,
// MetricsSnapshot, etc.). Storage backends, event dispatch, and encoding
// details live under internal/ and are never exported. The remote API is an
// external collaborator reached only through the gateway subpackage.
//
// # What this package must NOT do
//
//   - Validate the authenticity of session tokens. The route guard checks
//     presence only; token validation is the remote API's job.
//   - Treat the credential-blob checksum as a security boundary. It detects
//     accidental corruption, nothing more.
//   - Expose Redis clients, internal stores, or encoding details in its
//     public API.
//
// # Performance contract
//
// IsAuthenticated and the route guard are the hot path. They must not
// allocate beyond the request's cookie lookup and must never perform I/O.
// Credential, profile, and staging operations are allowed one store
// round-trip per call; gateway operations are allowed one HTTP round-trip.
package goGuard
