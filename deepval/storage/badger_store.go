package storage

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"

	"github.com/ravenfield/argus-deepval/deepval"
	"github.com/ravenfield/argus-deepval/deepval/codec"
)

// Key prefixes. Each snapshot owns two rows: the compressed payload under
// payloadPrefix and a JSON metadata row under metaPrefix, so List never
// touches the payloads.
const (
	payloadPrefix = "snap:"
	metaPrefix    = "meta:"
)

// BadgerStore implements Store using BadgerDB. Payloads are codec-encoded
// and zstd-compressed.
type BadgerStore struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewBadgerStore opens or creates a snapshot store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs

	// Snapshots are written once and read back whole, so tune for that:
	// small values stay in the LSM tree and conflict detection is dead
	// weight for single-writer use.
	opts.DetectConflicts = false
	opts.ValueThreshold = 1 << 10 // 1KB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &BadgerStore{db: db, enc: enc, dec: dec}, nil
}

// Put stores a snapshot of v.
func (s *BadgerStore) Put(v deepval.Value) (Snapshot, error) {
	data, err := codec.Encode(v)
	if err != nil {
		return Snapshot{}, err
	}
	snap := newSnapshot(data)

	meta, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to marshal snapshot metadata: %w", err)
	}
	compressed := s.enc.EncodeAll(data, nil)

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(payloadPrefix+snap.ID), compressed); err != nil {
			return err
		}
		return txn.Set([]byte(metaPrefix+snap.ID), meta)
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return snap, nil
}

// Get decodes the value stored under id.
func (s *BadgerStore) Get(id string) (deepval.Value, error) {
	var compressed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(payloadPrefix + id))
		if err != nil {
			return err
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	data, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot %s: %w", id, err)
	}
	return codec.Decode(data)
}

// List returns all snapshots, newest first.
func (s *BadgerStore) List() ([]Snapshot, error) {
	var out []Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(metaPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var snap Snapshot
				if err := json.Unmarshal(val, &snap); err != nil {
					return fmt.Errorf("corrupt snapshot metadata: %w", err)
				}
				out = append(out, snap)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortSnapshots(out)
	return out, nil
}

// Delete removes a snapshot's payload and metadata.
func (s *BadgerStore) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		// Probe the metadata row first so an unknown ID is reported
		// instead of silently succeeding.
		if _, err := txn.Get([]byte(metaPrefix + id)); err != nil {
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			return err
		}
		if err := txn.Delete([]byte(metaPrefix + id)); err != nil {
			return err
		}
		return txn.Delete([]byte(payloadPrefix + id))
	})
}

// Close releases the database and compression resources.
func (s *BadgerStore) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}
