// Package repository holds infrastructure-backed implementations of the
// domain repository contracts.
package repository

import (
	"context"

	"TradeRadar/internal/domain/models"
	drepo "TradeRadar/internal/domain/repository"
	"TradeRadar/pkg/kafka"
	"TradeRadar/pkg/logger"
)

// KafkaWhalePublisher pushes whale events onto a Kafka topic, keyed by
// pair so events for one market stay ordered within a partition.
type KafkaWhalePublisher struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

func NewKafkaWhalePublisher(producer *kafka.Producer, topic string, log *logger.Logger) drepo.EventPublisher {
	return &KafkaWhalePublisher{producer: producer, topic: topic, log: log}
}

func (p *KafkaWhalePublisher) PublishWhaleEvent(ctx context.Context, e *models.WhaleEvent) error {
	err := p.producer.Publish(ctx, p.topic, []byte(e.PairID), e)
	if err != nil {
		p.log.Warn("whale event publish failed",
			logger.String("pair", e.PairID),
			logger.Error(err))
	}
	return err
}

func (p *KafkaWhalePublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishWhaleEvent(context.Context, *models.WhaleEvent) error { return nil }
func (NopPublisher) Close() error                                                { return nil }
