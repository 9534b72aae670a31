package goGuard

import (
	"io"
	"time"

	"github.com/MrEthical07/goGuard/gateway"
	internalnotify "github.com/MrEthical07/goGuard/internal/notify"
)

// CredentialRecord is the decoded remember-me credential blob. It is read
// from and written to the persistent local store only; it is never sent to
// the remote API.
type CredentialRecord struct {
	Email    string
	Password string
	IssuedAt int64
}

// UserProfile is the cached display profile of the signed-in user. It is
// derived from server responses or, as a fallback, from the credential
// record; it is never authoritative.
type UserProfile struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role,omitempty"`
}

// ProfileUpdate is a partial profile mutation. Nil fields are left
// untouched; non-nil fields overwrite, including to the empty string.
// Every update is a shallow merge onto the current record, never a replace.
type ProfileUpdate struct {
	ID        *string
	Name      *string
	Email     *string
	Bio       *string
	AvatarURL *string
	Role      *string
}

// LoginState identifies the step a [LoginFlow] is at.
type LoginState uint8

const (
	// LoginStateIdle is an exported constant or variable used by the session engine.
	LoginStateIdle LoginState = iota
	// LoginStateAwaitingCode is an exported constant or variable used by the session engine.
	LoginStateAwaitingCode
	// LoginStateAuthenticated is an exported constant or variable used by the session engine.
	LoginStateAuthenticated
)

// LoginResult is returned by [LoginFlow.SubmitCode] once the one-time code
// is accepted. Token is the opaque server-issued session token; User is the
// response's user object when present.
type LoginResult struct {
	Token string
	User  *gateway.User
}

// MFASetupStep identifies the step an [MFASetup] wizard is at.
type MFASetupStep uint8

const (
	// MFAStepIntro is an exported constant or variable used by the session engine.
	MFAStepIntro MFASetupStep = iota
	// MFAStepProvisioned is an exported constant or variable used by the session engine.
	MFAStepProvisioned
	// MFAStepVerifying is an exported constant or variable used by the session engine.
	MFAStepVerifying
	// MFAStepDone is an exported constant or variable used by the session engine.
	MFAStepDone
)

// SessionClaims is a best-effort, UNVERIFIED peek into a session token that
// happens to be a JWT. It exists for display purposes (e.g. "session expires
// at") and must never feed an authorization decision.
type SessionClaims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionEvent is a structured lifecycle event emitted by the engine:
// login staged, code verified, profile updated, session cleared, and so on.
type SessionEvent = internalnotify.Event

// EventSink receives [SessionEvent] values from the engine's event
// dispatcher.
type EventSink = internalnotify.Sink

// NoOpSink is an [EventSink] that silently discards all events.
type NoOpSink = internalnotify.NoOpSink

// ChannelSink is a buffered channel-based [EventSink].
type ChannelSink = internalnotify.ChannelSink

// JSONWriterSink is an [EventSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalnotify.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalnotify.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalnotify.NewJSONWriterSink(w)
}
