package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"hoso/internal/amqp"
	"hoso/internal/core"
	"hoso/internal/export"
	"hoso/internal/store"
)

// ExportWorker mirrors the record snapshot to the report sheet. Every record
// event triggers a full export: the sheet is a rewrite of the whole snapshot,
// so there is no per-row state to reconcile and a lost message is healed by
// the next event or periodic run.
type ExportWorker struct {
	kv       store.KV
	exporter export.Exporter
}

func NewExportWorker(kv store.KV, exporter export.Exporter) *ExportWorker {
	return &ExportWorker{kv: kv, exporter: exporter}
}

// HandleRecordEvent processes a single record event from AMQP.
func (w *ExportWorker) HandleRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error {
	slog.InfoContext(ctx, "Processing record event",
		"op", msg.Op,
		"id", msg.ID)

	if err := w.ExportSnapshot(ctx); err != nil {
		return fmt.Errorf("export after %s event: %w", msg.Op, err)
	}
	return nil
}

// ExportSnapshot reads the current snapshot and writes the full report.
func (w *ExportWorker) ExportSnapshot(ctx context.Context) error {
	records, err := w.loadRecords(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if err := w.exporter.ExportRecords(ctx, records); err != nil {
		return fmt.Errorf("export records: %w", err)
	}

	slog.InfoContext(ctx, "Report exported", "count", len(records))
	return nil
}

// RunPeriodic exports on a fixed interval until the context is cancelled.
// This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ExportSnapshot(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}

func (w *ExportWorker) loadRecords(ctx context.Context) ([]core.VehicleRecord, error) {
	payload, found, err := w.kv.Get(ctx, store.SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if !found {
		return nil, nil
	}

	var records []core.VehicleRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}
