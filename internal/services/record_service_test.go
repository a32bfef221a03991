package services

import (
	"context"
	"errors"
	"testing"

	"hoso/internal/store"
)

type fakePublisher struct {
	events []string // "op:id"
	err    error
}

func (f *fakePublisher) PublishRecordEvent(_ context.Context, op, id string) error {
	f.events = append(f.events, op+":"+id)
	return f.err
}

func TestSavePublishesUpsert(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewRecordService(store.New(store.NewMemoryKV(0), nil), pub)

	r := store.Seed()[0]
	svc.Save(ctx, r)

	if _, ok := svc.Get(r.ID); !ok {
		t.Fatalf("record not saved")
	}
	if len(pub.events) != 1 || pub.events[0] != "upsert:"+r.ID {
		t.Fatalf("unexpected events: %v", pub.events)
	}
}

func TestDeletePublishesOnlyWhenRemoved(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewRecordService(store.New(store.NewMemoryKV(0), store.Seed()), pub)

	if !svc.Delete(ctx, "1") {
		t.Fatalf("expected removal")
	}
	if svc.Delete(ctx, "ghost") {
		t.Fatalf("unknown id must report false")
	}
	if len(pub.events) != 1 || pub.events[0] != "remove:1" {
		t.Fatalf("unexpected events: %v", pub.events)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewRecordService(store.New(store.NewMemoryKV(0), nil), pub)

	r := store.Seed()[0]
	svc.Save(ctx, r) // must not panic or lose the record
	if _, ok := svc.Get(r.ID); !ok {
		t.Fatalf("record lost on publish failure")
	}
}

func TestNilPublisherIsSkipped(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(store.New(store.NewMemoryKV(0), nil), nil)
	svc.Save(ctx, store.Seed()[0])
	svc.RequestExport(ctx)
	if svc.store.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", svc.store.Len())
	}
}
