package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

// Producer publishes order lifecycle events as JSON, keyed by order ID so a
// single order's events stay in partition order.
type Producer struct {
	sp    sarama.SyncProducer
	topic string
}

func NewProducer(sp sarama.SyncProducer, topic string) *Producer {
	return &Producer{sp: sp, topic: topic}
}

func (p *Producer) PublishOrderCreated(ctx context.Context, msg usecase.OrderCreatedMsg) error {
	return p.publish(msg.OrderID, "order.created", msg)
}

func (p *Producer) PublishStatusChanged(ctx context.Context, msg usecase.OrderStatusChangedMsg) error {
	return p.publish(msg.OrderID, "order.status_changed", msg)
}

func (p *Producer) publish(key, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}
	_, _, err = p.sp.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

var _ usecase.EventPublisher = (*Producer)(nil)
