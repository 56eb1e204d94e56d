package repository

import (
	"context"
	"fmt"

	"FinVault/internal/domain/models"
	"FinVault/internal/domain/repository"
	pkgkafka "FinVault/pkg/kafka"
)

// KafkaEventPublisher ships run reports and aggregated logs to Kafka.
// It also satisfies logger.Publisher.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a Kafka-backed event publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

var _ repository.EventPublisher = (*KafkaEventPublisher)(nil)

// RunReportEvent is the wire shape of a finished run.
type RunReportEvent struct {
	Type string `json:"type"`
	models.RunSummary
}

func (p *KafkaEventPublisher) PublishRunReport(ctx context.Context, report *models.RunReport) error {
	sum := report.Summary()
	ev := RunReportEvent{Type: "run_report", RunSummary: sum}
	if err := p.producer.Publish(ctx, p.topic, []byte(sum.TargetDate), ev); err != nil {
		return fmt.Errorf("publish run report %s: %w", sum.RunID, err)
	}
	return nil
}

// PublishMessage sends an arbitrary payload to topic.
func (p *KafkaEventPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	if topic == "" {
		topic = p.topic
	}
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopEventPublisher drops every event. Used when Kafka is disabled.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishRunReport(context.Context, *models.RunReport) error { return nil }

func (NoopEventPublisher) PublishMessage(context.Context, string, interface{}) error { return nil }

func (NoopEventPublisher) Close() error { return nil }
