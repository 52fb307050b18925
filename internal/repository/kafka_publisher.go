package repository

import (
	"context"

	"AgriPulse/internal/domain/models"
	"AgriPulse/internal/domain/repository"
	pkgkafka "AgriPulse/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Readings are keyed by
// field id so one field's samples stay ordered within a partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, r *models.SoilReading) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.Field), map[string]interface{}{
		"field": r.Field,
		"crop":  r.Crop,
		"t":     r.Timestamp,
		"m":     r.Moisture,
	})
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, readings []*models.SoilReading) error {
	if len(readings) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(readings))
	for i, r := range readings {
		msgs[i] = pkgkafka.Message{
			Key: []byte(r.Field),
			Value: map[string]interface{}{
				"field": r.Field,
				"crop":  r.Crop,
				"t":     r.Timestamp,
				"m":     r.Moisture,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
