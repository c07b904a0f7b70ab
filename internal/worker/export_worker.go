// Package worker moves activity events from the queue to the spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PatricioAlv/adminGastos/internal/amqp"
	"github.com/PatricioAlv/adminGastos/internal/export"
)

// ExportWorker appends consumed activity events to the export sheet.
type ExportWorker struct {
	writer export.RowWriter
}

func NewExportWorker(writer export.RowWriter) *ExportWorker {
	return &ExportWorker{writer: writer}
}

// HandleEvent processes one activity event. Errors propagate so the AMQP
// consumer can requeue the delivery.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *amqp.ActivityEvent) error {
	if event.Kind == "" {
		return fmt.Errorf("event has no kind")
	}

	ref, err := w.writer.AppendActivity(ctx, event)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	slog.InfoContext(ctx, "exported activity event",
		"kind", event.Kind,
		"refId", event.RefID,
		"sheetRef", ref)

	return nil
}

// Run consumes events until ctx is cancelled.
func (w *ExportWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeActivity(ctx, func(event *amqp.ActivityEvent) error {
		handleCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return w.HandleEvent(handleCtx, event)
	})
}
