// Package storage persists value snapshots. A snapshot is an immutable,
// content-fingerprinted copy of a value. Put serializes the value and Get
// decodes a fresh one, so what comes back is independent of both the
// original and every other Get result.
package storage

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ravenfield/argus-deepval/deepval"
	"github.com/ravenfield/argus-deepval/deepval/codec"
)

// Snapshot describes one stored value.
type Snapshot struct {
	// ID is the handle for Get/Delete, assigned at Put.
	ID string `json:"id"`
	// Fingerprint is the hex SHA-1 of the encoded value.
	Fingerprint string `json:"fingerprint"`
	// CreatedAt is the Put time, UTC.
	CreatedAt time.Time `json:"created_at"`
	// Size is the encoded (uncompressed) payload size in bytes.
	Size int `json:"size"`
}

// ErrNotFound reports a snapshot ID with no stored value.
var ErrNotFound = errors.New("snapshot not found")

// Store is the interface for snapshot storage.
type Store interface {
	// Put stores a snapshot of v.
	Put(v deepval.Value) (Snapshot, error)

	// Get decodes the value stored under id. Every call returns an
	// independent copy.
	Get(id string) (deepval.Value, error)

	// List returns all snapshots, newest first.
	List() ([]Snapshot, error)

	// Delete removes a snapshot. Deleting an unknown ID is ErrNotFound.
	Delete(id string) error

	// Close releases the store's resources.
	Close() error
}

// MemStore is an in-process Store for tests and ephemeral use. It keeps the
// encoded payloads, not the values, so Get independence works the same way
// as in the persistent store.
type MemStore struct {
	mu       sync.Mutex
	payloads map[string][]byte
	metas    map[string]Snapshot
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		payloads: make(map[string][]byte),
		metas:    make(map[string]Snapshot),
	}
}

// Put stores a snapshot of v.
func (s *MemStore) Put(v deepval.Value) (Snapshot, error) {
	data, err := codec.Encode(v)
	if err != nil {
		return Snapshot{}, err
	}
	snap := newSnapshot(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[snap.ID] = data
	s.metas[snap.ID] = snap
	return snap, nil
}

// Get decodes the value stored under id.
func (s *MemStore) Get(id string) (deepval.Value, error) {
	s.mu.Lock()
	data, ok := s.payloads[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return codec.Decode(data)
}

// List returns all snapshots, newest first.
func (s *MemStore) List() ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Snapshot, 0, len(s.metas))
	for _, m := range s.metas {
		out = append(out, m)
	}
	sortSnapshots(out)
	return out, nil
}

// Delete removes a snapshot.
func (s *MemStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.metas[id]; !ok {
		return ErrNotFound
	}
	delete(s.metas, id)
	delete(s.payloads, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

// newSnapshot builds the metadata row for an encoded payload.
func newSnapshot(encoded []byte) Snapshot {
	return Snapshot{
		ID:          uuid.NewString(),
		Fingerprint: hexSum(encoded),
		CreatedAt:   time.Now().UTC(),
		Size:        len(encoded),
	}
}

// hexSum fingerprints an encoded payload. Hashing the bytes Put already has
// matches codec.FingerprintHex without encoding the value twice.
func hexSum(encoded []byte) string {
	sum := sha1.Sum(encoded)
	return hex.EncodeToString(sum[:])
}

// sortSnapshots orders newest first, breaking ties by ID for stability.
func sortSnapshots(snaps []Snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})
}
