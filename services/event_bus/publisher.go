package event_bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"fastfast-logistics/logger"
	"fastfast-logistics/models/booking"
	"fastfast-logistics/utils"

	"github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingRiderAccepted = "booking.rider_accepted"
	TypeBookingRiderRejected = "booking.rider_rejected"
	TypeBookingCancelled     = "booking.cancelled"
	TypeShipmentStatus       = "shipment.status_updated"
)

// Event is the JSON value published for every committed lifecycle change.
type Event struct {
	Type           string         `json:"type"`
	BookingID      uint           `json:"booking_id"`
	TrackingNumber string         `json:"tracking_number,omitempty"`
	Status         booking.Status `json:"status"`
	ShipmentStatus booking.Status `json:"shipment_status,omitempty"`
	RiderID        *uint          `json:"rider_id,omitempty"`
	ActorID        uint           `json:"actor_id"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// Publisher delivers lifecycle events after the transaction commits.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Writer is the subset of kafka.Writer the producer needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher writes to topic, keyed by booking id so events for
// one booking stay ordered within a partition.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w}
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.BookingID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs events. Used when no brokers are configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	logger.Debug(fmt.Sprintf("event %s booking=%d status=%s", event.Type, event.BookingID, event.Status))
	return nil
}

func (LogPublisher) Close() error { return nil }

// NewFromEnv returns a Kafka publisher when KAFKA_BROKERS is set.
func NewFromEnv() Publisher {
	brokers := utils.SplitList(utils.GetEnv("KAFKA_BROKERS", ""))
	if len(brokers) == 0 {
		logger.Warning("KAFKA_BROKERS not set, lifecycle events will only be logged")
		return LogPublisher{}
	}
	topic := utils.GetEnv("KAFKA_TOPIC", "fastfast.bookings")
	logger.Info(fmt.Sprintf("Publishing lifecycle events to %s on %v", topic, brokers))
	return NewKafkaPublisher(brokers, topic)
}
