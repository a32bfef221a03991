package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"hoso/internal/core"
)

// SnapshotKey is the fixed slot the serialized record list lives under.
const SnapshotKey = "hoso_records"

// Store holds the ordered record list, newest-created first, and writes the
// whole list to the KV slot after every mutation. In-memory state is the
// source of truth for the session; a failed write is logged, never surfaced.
type Store struct {
	mu      sync.Mutex
	kv      KV
	records []core.VehicleRecord
}

// New wraps an explicit initial snapshot. Used directly in tests; Open is the
// normal constructor.
func New(kv KV, initial []core.VehicleRecord) *Store {
	return &Store{kv: kv, records: append([]core.VehicleRecord(nil), initial...)}
}

// Open loads the snapshot from kv. A missing or undecodable payload is a
// normal path: the store starts from the seed dataset and logs a warning.
func Open(ctx context.Context, kv KV) *Store {
	payload, ok, err := kv.Get(ctx, SnapshotKey)
	if err != nil {
		slog.WarnContext(ctx, "Snapshot read failed, starting from seed data",
			"key", SnapshotKey, "error", err)
		return New(kv, Seed())
	}
	if !ok {
		slog.WarnContext(ctx, "No snapshot found, starting from seed data", "key", SnapshotKey)
		return New(kv, Seed())
	}

	var records []core.VehicleRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		slog.WarnContext(ctx, "Snapshot payload corrupt, starting from seed data",
			"key", SnapshotKey, "size", len(payload), "error", err)
		return New(kv, Seed())
	}

	slog.InfoContext(ctx, "Snapshot loaded", "key", SnapshotKey, "records", len(records))
	return New(kv, records)
}

// List returns a copy of the record list in insertion order, newest first.
func (s *Store) List() []core.VehicleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.VehicleRecord(nil), s.records...)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (core.VehicleRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return core.VehicleRecord{}, false
}

// Upsert replaces the record with the same id in place, or prepends it as the
// newest entry. The whole record is the unit of replacement; there is no
// partial patch.
func (s *Store) Upsert(ctx context.Context, r core.VehicleRecord) {
	s.mu.Lock()
	replaced := false
	for i := range s.records {
		if s.records[i].ID == r.ID {
			s.records[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		s.records = append([]core.VehicleRecord{r}, s.records...)
	}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Record saved", "id", r.ID, "category", r.Category, "replaced", replaced)
	s.persist(ctx)
}

// Remove deletes the record with the given id. A missing id is a no-op, not
// an error; it reports whether anything was removed.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	removed := false
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		return false
	}
	slog.InfoContext(ctx, "Record removed", "id", id)
	s.persist(ctx)
	return true
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// persist serializes the full list and overwrites the snapshot slot. Failures
// (typically the quota, tripped by embedded images) leave in-memory state
// authoritative and are only logged.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	payload, err := json.Marshal(s.records)
	s.mu.Unlock()
	if err != nil {
		slog.WarnContext(ctx, "Snapshot encode failed, keeping in-memory state",
			"key", SnapshotKey, "error", err)
		return
	}
	if err := s.kv.Set(ctx, SnapshotKey, payload); err != nil {
		slog.WarnContext(ctx, "Snapshot write failed, keeping in-memory state",
			"key", SnapshotKey, "size", len(payload), "error", err)
	}
}
