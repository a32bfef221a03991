package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteKVSetGet(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "hoso.db"), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "k", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || string(v) != `[1,2,3]` {
		t.Fatalf("get: v=%s ok=%v err=%v", v, ok, err)
	}

	// Overwrite wholesale.
	if err := kv.Set(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = kv.Get(ctx, "k")
	if string(v) != `[]` {
		t.Fatalf("expected overwritten value, got %s", v)
	}
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hoso.db")

	kv, err := NewSQLiteKV(path, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set(ctx, SnapshotKey, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	kv.Close()

	kv, err = NewSQLiteKV(path, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()
	v, ok, err := kv.Get(ctx, SnapshotKey)
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":"1"}]` {
		t.Fatalf("unexpected payload after reopen: %s", v)
	}
}

func TestSQLiteKVQuota(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "hoso.db"), 8)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	err = kv.Set(ctx, "k", []byte("0123456789"))
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}
