package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryKV keeps values in process memory. Used for the memory backend and in
// tests; like the sqlite backend it can enforce a payload quota.
type MemoryKV struct {
	mu         sync.Mutex
	values     map[string][]byte
	maxPayload int
}

func NewMemoryKV(maxPayload int) *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte), maxPayload: maxPayload}
}

func (k *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.values[key]
	if !ok {
		return nil, false, nil
	}
	out := append([]byte(nil), v...)
	return out, true, nil
}

func (k *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	if k.maxPayload > 0 && len(value) > k.maxPayload {
		return fmt.Errorf("write %q (%d bytes): %w", key, len(value), ErrPayloadTooLarge)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[key] = append([]byte(nil), value...)
	return nil
}

func (k *MemoryKV) Close() error { return nil }
