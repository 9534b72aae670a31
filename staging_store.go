package goGuard

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MrEthical07/goGuard/internal/storage"
)

const loginStagingRecordVersion1 = 1

// loginStagingRecord carries the email between the password step and the
// code step. It exists only for the staging TTL window.
type loginStagingRecord struct {
	Email    string
	IssuedAt int64
}

type loginStagingStore struct {
	store  storage.KV
	prefix string
	ttl    time.Duration
}

func newLoginStagingStore(store storage.KV, prefix string, ttl time.Duration) *loginStagingStore {
	return &loginStagingStore{store: store, prefix: prefix, ttl: ttl}
}

func (s *loginStagingStore) key(stagingID string) string {
	return s.prefix + ":" + stagingID
}

// Stage writes the staging record under the caller's ID, replacing any
// earlier record for the same ID.
func (s *loginStagingStore) Stage(ctx context.Context, stagingID, email string, now time.Time) error {
	encoded, err := encodeLoginStagingRecord(&loginStagingRecord{
		Email:    email,
		IssuedAt: now.Unix(),
	})
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, s.key(stagingID), encoded, s.ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrStagingUnavailable, err)
	}
	return nil
}

// Peek reads a staging record without consuming it. The record's own
// issued-at is checked against the TTL as well: backends normally expire
// the key themselves, but a backend without TTL support (or with a skewed
// clock) must not hand back a stale staged login.
func (s *loginStagingStore) Peek(ctx context.Context, stagingID string) (*loginStagingRecord, error) {
	data, err := s.store.Get(ctx, s.key(stagingID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrStagingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStagingUnavailable, err)
	}

	record, err := decodeLoginStagingRecord(data)
	if err != nil {
		return nil, err
	}
	if s.ttl > 0 && time.Now().Unix()-record.IssuedAt > int64(s.ttl.Seconds()) {
		_ = s.store.Del(ctx, s.key(stagingID))
		return nil, ErrStagingExpired
	}
	return record, nil
}

// Consume reads and deletes a staging record in one call. Deletion failure
// after a successful read is not an error; the TTL covers it.
func (s *loginStagingStore) Consume(ctx context.Context, stagingID string) (*loginStagingRecord, error) {
	record, err := s.Peek(ctx, stagingID)
	if err != nil {
		return nil, err
	}
	_ = s.store.Del(ctx, s.key(stagingID))
	return record, nil
}

// Discard removes a staging record.
func (s *loginStagingStore) Discard(ctx context.Context, stagingID string) error {
	if err := s.store.Del(ctx, s.key(stagingID)); err != nil {
		return fmt.Errorf("%w: %v", ErrStagingUnavailable, err)
	}
	return nil
}

func encodeLoginStagingRecord(record *loginStagingRecord) ([]byte, error) {
	if record == nil {
		return nil, errors.New("nil staging record")
	}
	if len(record.Email) > 0xFFFF {
		return nil, errors.New("staging email too long")
	}

	var buf bytes.Buffer
	buf.WriteByte(loginStagingRecordVersion1)

	var issued [8]byte
	binary.BigEndian.PutUint64(issued[:], uint64(record.IssuedAt))
	buf.Write(issued[:])

	var emailLen [2]byte
	binary.BigEndian.PutUint16(emailLen[:], uint16(len(record.Email)))
	buf.Write(emailLen[:])
	buf.WriteString(record.Email)

	return buf.Bytes(), nil
}

func decodeLoginStagingRecord(data []byte) (*loginStagingRecord, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("staging record truncated: %w", err)
	}
	if version != loginStagingRecordVersion1 {
		return nil, fmt.Errorf("unknown staging record version %d", version)
	}

	var issued [8]byte
	if _, err := io.ReadFull(reader, issued[:]); err != nil {
		return nil, fmt.Errorf("staging record truncated: %w", err)
	}

	var emailLen [2]byte
	if _, err := io.ReadFull(reader, emailLen[:]); err != nil {
		return nil, fmt.Errorf("staging record truncated: %w", err)
	}

	email := make([]byte, binary.BigEndian.Uint16(emailLen[:]))
	if _, err := io.ReadFull(reader, email); err != nil {
		return nil, fmt.Errorf("staging record truncated: %w", err)
	}
	if reader.Len() != 0 {
		return nil, errors.New("staging record has trailing bytes")
	}

	return &loginStagingRecord{
		Email:    string(email),
		IssuedAt: int64(binary.BigEndian.Uint64(issued[:])),
	}, nil
}
