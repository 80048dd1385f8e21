package repository

import (
	"context"
	"fmt"
	"time"

	"MandiPredict/internal/domain/models"
	pkgch "MandiPredict/pkg/clickhouse"
)

// Schema statements for the prediction history table. Idempotent.
var HistorySchema = []string{
	"CREATE DATABASE IF NOT EXISTS mandipredict",
	`CREATE TABLE IF NOT EXISTS mandipredict.prediction_history (
		ts DateTime,
		commodity String,
		market String,
		target_date String,
		quantity Float64,
		predicted_price Float64,
		raw_prediction Float64,
		model_used String,
		latency_ms Int64
	) ENGINE=MergeTree ORDER BY (commodity, ts)`,
}

// ClickHouseHistory writes prediction audit rows to ClickHouse.
type ClickHouseHistory struct {
	client *pkgch.Client
}

// NewClickHouseHistory creates a ClickHouse-backed history sink.
func NewClickHouseHistory(client *pkgch.Client) *ClickHouseHistory {
	return &ClickHouseHistory{client: client}
}

func (h *ClickHouseHistory) Record(ctx context.Context, rec models.HistoryRecord) error {
	const q = `INSERT INTO mandipredict.prediction_history
		(ts, commodity, market, target_date, quantity, predicted_price, raw_prediction, model_used, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := h.client.DB().ExecContext(ctx, q,
		time.Unix(rec.Timestamp, 0),
		rec.Commodity,
		rec.Market,
		rec.Date,
		rec.Quantity,
		rec.PredictedPrice,
		rec.RawPrediction,
		rec.ModelUsed,
		rec.LatencyMS,
	)
	if err != nil {
		return fmt.Errorf("insert prediction history: %w", err)
	}
	return nil
}

func (h *ClickHouseHistory) Close() error {
	return h.client.Close()
}
