package publisher

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mirstone/ordermart/internal/adapter/config"
	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher ships order events to a kafka topic, keyed by order id
// so one order's events stay in partition order. With no brokers
// configured it degrades to a logging no-op, which keeps local setups
// free of a kafka dependency.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(conf *config.Kafka, logger *zap.Logger) (*KafkaPublisher, error) {
	brokers := make([]string, 0)
	for _, broker := range strings.Split(conf.Brokers, ",") {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			brokers = append(brokers, broker)
		}
	}

	p := &KafkaPublisher{logger: logger}
	if len(brokers) == 0 {
		return p, nil
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        conf.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return p, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []domain.Event) error {
	if p.writer == nil {
		for _, event := range events {
			p.logger.Debug("event publishing disabled, dropping event",
				zap.String("kind", string(event.Kind)),
				zap.String("order", event.OrderID.String()))
		}
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.OrderID.String()),
			Value: payload,
			Time:  event.OccurredAt,
		})
	}

	return p.writer.WriteMessages(ctx, messages...)
}

func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
