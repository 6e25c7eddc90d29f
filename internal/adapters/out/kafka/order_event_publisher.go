// Package kafka publishes order lifecycle changes to a Kafka topic for
// downstream consumers (notification services, analytics). Publishing is
// best effort: the owning command has already committed when an event goes
// out, so a broker failure is reported to the caller for logging but must
// never roll anything back.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/order"

	"github.com/IBM/sarama"
)

// OrderChangedEvent is the JSON payload describing an order's current state.
type OrderChangedEvent struct {
	OrderID           string    `json:"orderId"`
	StoreID           string    `json:"storeId"`
	Status            string    `json:"status"`
	CourierID         *string   `json:"courierId,omitempty"`
	SelectedBidID     *string   `json:"selectedBidId,omitempty"`
	StoreEscrowPaid   bool      `json:"storeEscrowPaid"`
	CourierEscrowPaid bool      `json:"courierEscrowPaid"`
	OccurredAt        time.Time `json:"occurredAt"`
}

// SaramaOrderEventPublisher implements OrderEventPublisher on top of a
// synchronous Kafka producer. Events are keyed by order ID so all changes of
// one order land on the same partition in order.
type SaramaOrderEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaOrderEventPublisher connects a synchronous producer to the given
// brokers. The producer waits for broker acknowledgement so a returned nil
// means the event is stored.
func NewSaramaOrderEventPublisher(brokers []string, topic string) (*SaramaOrderEventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &SaramaOrderEventPublisher{
		producer: producer,
		topic:    topic,
	}, nil
}

// PublishOrderChanged emits an event describing the order's current state.
func (p *SaramaOrderEventPublisher) PublishOrderChanged(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(eventFromDomain(aggregate))
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(aggregate.ID().String()),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err = p.producer.SendMessage(msg)
	return err
}

// Close shuts down the underlying producer.
func (p *SaramaOrderEventPublisher) Close() error {
	return p.producer.Close()
}

func eventFromDomain(aggregate *order.Order) OrderChangedEvent {
	event := OrderChangedEvent{
		OrderID:           aggregate.ID().String(),
		StoreID:           aggregate.StoreID().String(),
		Status:            aggregate.Status().String(),
		StoreEscrowPaid:   aggregate.IsStoreEscrowPaid(),
		CourierEscrowPaid: aggregate.IsCourierEscrowPaid(),
		OccurredAt:        time.Now().UTC(),
	}

	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.String()
		event.CourierID = &id
	}

	if bidID := aggregate.SelectedBid(); bidID != nil {
		id := bidID.String()
		event.SelectedBidID = &id
	}

	return event
}
