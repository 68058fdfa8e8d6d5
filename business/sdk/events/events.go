// Package events publishes inventory lifecycle events to kafka. Publishing is
// fire and forget, a full queue drops the event rather than block a request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/velostock/velostock/foundation/logger"
)

var jsonMarshal = json.Marshal

// EventType classifies what happened to a vehicle.
type EventType string

// Set of event types published to the inventory topic.
const (
	VehicleCreated       EventType = "vehicle_created"
	VehicleStatusChanged EventType = "vehicle_status_changed"
	VehicleSold          EventType = "vehicle_sold"
	VehicleDeleted       EventType = "vehicle_deleted"
	LeadCreated          EventType = "lead_created"
)

// Event is the payload written to the topic, keyed by the entity id so
// consumers see a per-vehicle ordering.
type Event struct {
	Type      EventType       `json:"type"`
	CompanyID uuid.UUID       `json:"company_id"`
	EntityID  uuid.UUID       `json:"entity_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	At        time.Time       `json:"at"`
}

// KafkaWriter abstracts the kafka writer so tests can capture messages.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer drains a buffered channel into kafka on its own goroutine.
type Producer struct {
	log       *logger.Logger
	writer    KafkaWriter
	events    chan Event
	closeChan chan struct{}
}

// NewProducer constructs a producer against the specified brokers and topic.
func NewProducer(log *logger.Logger, brokers []string, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	if err := conn.CreateTopics(topicConfigs...); err != nil {
		log.Warn(context.Background(), "events: create topic", "topic", topic, "err", err)
	}

	p := Producer{
		log: log,
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan Event, 1000),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()

	return &p, nil
}

// NewProducerWithWriter constructs a producer on top of an existing writer.
func NewProducerWithWriter(log *logger.Logger, writer KafkaWriter) *Producer {
	p := Producer{
		log:       log,
		writer:    writer,
		events:    make(chan Event, 1000),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()

	return &p
}

// Publish queues an event for delivery. It never blocks the caller.
func (p *Producer) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	select {
	case p.events <- evt:
	default:
		p.log.Warn(context.Background(), "events: queue full, dropping event",
			"type", evt.Type,
			"entity_id", evt.EntityID)
	}
}

// Close stops the event loop and releases the underlying writer.
func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.log.Error(context.Background(), "events: close writer", "err", err)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case evt := <-p.events:
			p.sendEvent(context.Background(), evt)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, evt Event) {
	value, err := jsonMarshal(evt)
	if err != nil {
		p.log.Error(ctx, "events: serialize event",
			"type", evt.Type,
			"entity_id", evt.EntityID,
			"err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(evt.EntityID.String()),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error(ctx, "events: produce event",
			"type", evt.Type,
			"entity_id", evt.EntityID,
			"err", err)
	}
}
