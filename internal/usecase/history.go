package usecase

import (
	"context"

	"MandiPredict/internal/domain/models"
)

// HistorySink receives a best-effort audit record per completed prediction.
// Implementations must not block the request path beyond their own timeouts;
// errors are logged by the caller, never surfaced to the client.
type HistorySink interface {
	Record(ctx context.Context, rec models.HistoryRecord) error
	Close() error
}

// NoopSink discards history records.
type NoopSink struct{}

// NewNoopSink creates a sink that discards everything.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (*NoopSink) Record(context.Context, models.HistoryRecord) error { return nil }

func (*NoopSink) Close() error { return nil }
