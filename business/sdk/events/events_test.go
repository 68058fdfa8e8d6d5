package events_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostock/velostock/business/sdk/events"
	"github.com/velostock/velostock/foundation/logger"
)

// captureWriter records every message handed to the producer.
type captureWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	return nil
}

func (w *captureWriter) messages() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

func testLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func Test_Producer_Publish(t *testing.T) {
	writer := &captureWriter{}
	producer := events.NewProducerWithWriter(testLogger(), writer)
	defer producer.Close()

	companyID := uuid.New()
	entityID := uuid.New()

	producer.Publish(events.Event{
		Type:      events.VehicleSold,
		CompanyID: companyID,
		EntityID:  entityID,
	})

	waitFor(t, func() bool { return len(writer.messages()) == 1 })

	msg := writer.messages()[0]

	// Keyed by entity so consumers see per-vehicle ordering.
	assert.Equal(t, entityID.String(), string(msg.Key))

	var evt events.Event
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, events.VehicleSold, evt.Type)
	assert.Equal(t, companyID, evt.CompanyID)
	assert.Equal(t, entityID, evt.EntityID)
	assert.False(t, evt.At.IsZero())
}

func Test_Producer_PreservesOrder(t *testing.T) {
	writer := &captureWriter{}
	producer := events.NewProducerWithWriter(testLogger(), writer)
	defer producer.Close()

	typs := []events.EventType{
		events.VehicleCreated,
		events.VehicleStatusChanged,
		events.VehicleSold,
	}

	for _, typ := range typs {
		producer.Publish(events.Event{Type: typ, EntityID: uuid.New()})
	}

	waitFor(t, func() bool { return len(writer.messages()) == len(typs) })

	for i, msg := range writer.messages() {
		var evt events.Event
		require.NoError(t, json.Unmarshal(msg.Value, &evt))
		assert.Equal(t, typs[i], evt.Type)
	}
}
