// Package notify provides the engine's session-lifecycle event dispatch and
// the payload-free profile-changed broadcast.
//
// # Design
//
// Events (login staged, code verified, profile updated, session cleared, …)
// are forwarded asynchronously to a pluggable [Sink] by a buffered
// [Dispatcher]; backpressure either blocks bounded by the caller's context
// or drops with accounting, depending on configuration. The [Broadcaster]
// is a separate, advisory fanout: subscribers receive an empty struct and
// re-read current state themselves — no payload is ever delivered.
//
// # Architecture boundaries
//
// This package owns event transport only. Event construction and the
// decision of what to emit belong to the root package.
//
// # What this package must NOT do
//
//   - Import goGuard or any sibling internal package.
//   - Block an emitter on a slow broadcast subscriber.
//   - Carry state payloads on the broadcast channel.
package notify
