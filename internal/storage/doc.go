// Package storage provides the key-value backends behind the engine's
// credential, profile, and staging caches.
//
// # Design
//
// The browser's persistent local store generalizes to the [KV] interface:
// byte values under well-known string keys, with optional TTL. The default
// backend is in-process memory (expiry evaluated lazily on read, never
// swept); a Redis backend serves multi-instance deployments and namespaces
// keys under a configurable prefix.
//
// # Architecture boundaries
//
// This package owns persistence only. It does NOT encode records, enforce
// record expiry semantics, or make authentication decisions — those belong
// to the root package.
//
// # What this package must NOT do
//
//   - Import goGuard or any sibling internal package.
//   - Interpret stored values.
//   - Log or expose stored secrets.
package storage
