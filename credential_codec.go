package goGuard

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DefaultCredentialMaxAge is an exported constant or variable used by the session engine.
//
// Cached credentials older than this are treated as absent on read.
const DefaultCredentialMaxAge = 30 * 24 * time.Hour

// credentialHeader is the fixed first segment of every encoded record.
// The shape mimics a JWT header for wire familiarity; no signing happens.
const credentialHeader = `{"alg":"HS256","typ":"JWT"}`

type credentialPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IssuedAt int64  `json:"iat"`
}

// EncodeCredentials describes the encode-credentials operation and its observable behavior.
//
// EncodeCredentials serializes an email/password pair into the three-segment
// cache format: base64(header), base64(payload), and an integrity segment
// computed over the first two. The integrity segment detects accidental
// corruption only. It is NOT a signature and the output is NOT a security
// boundary; anything that can read the store can forge a valid record.
//
// Inputs are not validated. Empty strings encode and round-trip unchanged.
//
// EncodeCredentials does not mutate shared global state and can be used concurrently.
func EncodeCredentials(email, password string, now time.Time) string {
	payload, _ := json.Marshal(credentialPayload{
		Email:    email,
		Password: password,
		IssuedAt: now.UnixMilli(),
	})

	headerSeg := base64.StdEncoding.EncodeToString([]byte(credentialHeader))
	payloadSeg := base64.StdEncoding.EncodeToString(payload)

	return headerSeg + "." + payloadSeg + "." + integritySegment(headerSeg, payloadSeg)
}

// DecodeCredentials describes the decode-credentials operation and its observable behavior.
//
// DecodeCredentials reverses [EncodeCredentials]. It returns nil, never an
// error, for every failure mode: wrong segment count, integrity mismatch,
// undecodable or malformed payload, or a record older than
// [DefaultCredentialMaxAge] relative to now. Callers treat nil uniformly as
// "no cached credentials".
//
// DecodeCredentials never panics regardless of input and can be used concurrently.
func DecodeCredentials(token string, now time.Time) *CredentialRecord {
	return decodeCredentials(token, now, DefaultCredentialMaxAge)
}

func decodeCredentials(token string, now time.Time, maxAge time.Duration) *CredentialRecord {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil
	}

	if integritySegment(segments[0], segments[1]) != segments[2] {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(segments[1])
	if err != nil {
		return nil
	}

	var payload credentialPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if payload.Email == "" && payload.Password == "" && payload.IssuedAt == 0 {
		// Valid JSON that is not a credential payload (e.g. "null" or "{}").
		return nil
	}

	if maxAge > 0 {
		age := now.UnixMilli() - payload.IssuedAt
		if age > maxAge.Milliseconds() {
			return nil
		}
	}

	return &CredentialRecord{
		Email:    payload.Email,
		Password: payload.Password,
		IssuedAt: payload.IssuedAt,
	}
}

// integritySegment sums the byte codes of "header.payload" and base64
// encodes the decimal string of that sum.
func integritySegment(headerSeg, payloadSeg string) string {
	joined := headerSeg + "." + payloadSeg
	var sum uint64
	for i := 0; i < len(joined); i++ {
		sum += uint64(joined[i])
	}
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatUint(sum, 10)))
}
