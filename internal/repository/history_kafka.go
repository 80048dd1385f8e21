package repository

import (
	"context"
	"fmt"

	"MandiPredict/internal/domain/models"
	pkgkafka "MandiPredict/pkg/kafka"
)

// KafkaHistory publishes prediction audit records to a Kafka topic, keyed by
// commodity so per-commodity ordering holds within a partition.
type KafkaHistory struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaHistory creates a Kafka-backed history sink.
func NewKafkaHistory(producer *pkgkafka.Producer, topic string) *KafkaHistory {
	return &KafkaHistory{producer: producer, topic: topic}
}

func (h *KafkaHistory) Record(ctx context.Context, rec models.HistoryRecord) error {
	if err := h.producer.Publish(ctx, h.topic, []byte(rec.Commodity), rec); err != nil {
		return fmt.Errorf("publish prediction history: %w", err)
	}
	return nil
}

func (h *KafkaHistory) Close() error {
	return h.producer.Close()
}
