// Package middleware exposes the edge route guard: locale-aware redirect
// policy between public and protected pages, driven purely by session
// cookie presence.
//
// # Policy
//
//   - Excluded paths (API routes, framework internals, well-known static
//     files) bypass the guard entirely.
//   - No cookie + protected page (except the bare root) redirects to the
//     locale's login page.
//   - Cookie + public page redirects to the locale's dashboard.
//   - Everything else passes through.
//
// The locale is the first path segment when it appears in the configured
// locale table, else the default.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// inspect token contents — presence is the entire signal, and the remote
// API remains the authority on validity.
//
// # What this package must NOT do
//
//   - Parse session tokens.
//   - Perform I/O. The guard sits on every request; a store or network
//     round-trip here is a defect.
//   - Distinguish an expired cookie from a forged one. Both are "present".
package middleware
