package services

import (
	"context"
	"log/slog"

	"hoso/internal/core"
	"hoso/internal/store"
)

// EventPublisher announces record changes to the report worker.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, op, id string) error
}

// RecordService orchestrates record mutations: every change goes through the
// store (and its snapshot write), then an event is published for the report
// worker. Publishing is best-effort; a broker failure never fails the user's
// action.
type RecordService struct {
	store     *store.Store
	publisher EventPublisher
}

func NewRecordService(store *store.Store, publisher EventPublisher) *RecordService {
	return &RecordService{store: store, publisher: publisher}
}

// List returns all records, newest first.
func (s *RecordService) List() []core.VehicleRecord {
	return s.store.List()
}

// Get returns a record by id.
func (s *RecordService) Get(id string) (core.VehicleRecord, bool) {
	return s.store.Get(id)
}

// Save commits a full record (create or whole-record replace) and publishes
// an upsert event.
func (s *RecordService) Save(ctx context.Context, r core.VehicleRecord) {
	s.store.Upsert(ctx, r)
	s.publish(ctx, "upsert", r.ID)
}

// Delete removes a record by id; absent ids are a no-op. A remove event is
// published only when something was actually deleted.
func (s *RecordService) Delete(ctx context.Context, id string) bool {
	removed := s.store.Remove(ctx, id)
	if removed {
		s.publish(ctx, "remove", id)
	}
	return removed
}

// RequestExport asks the report worker to export the full record list.
func (s *RecordService) RequestExport(ctx context.Context) {
	s.publish(ctx, "export", "")
}

func (s *RecordService) publish(ctx context.Context, op, id string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No event publisher configured, skipping record event", "op", op)
		return
	}
	if err := s.publisher.PublishRecordEvent(ctx, op, id); err != nil {
		// The mutation already succeeded locally; don't fail the request.
		slog.ErrorContext(ctx, "Failed to publish record event",
			"op", op, "id", id, "error", err)
	}
}
