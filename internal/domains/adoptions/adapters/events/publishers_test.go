package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/kafka"
)

type recordingProducer struct {
	messages []*kafka.Message
	err      error
}

func (p *recordingProducer) Produce(_ context.Context, msg *kafka.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

type recordingJSON struct {
	types  []string
	bodies []any
}

func (p *recordingJSON) PublishJSON(_ context.Context, messageType string, body any) error {
	p.types = append(p.types, messageType)
	p.bodies = append(p.bodies, body)
	return nil
}

func sampleEvent() domain.Event {
	adoption, _ := domain.NewAdoption("A1", "U1", "P1", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	return domain.NewEvent(domain.EventAdoptionRequested, adoption, time.Date(2024, 5, 1, 10, 0, 1, 0, time.UTC))
}

func TestKafkaPublisherKeysByPet(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "adoption-events")

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "adoption-events", msg.Topic)
	assert.Equal(t, []byte("P1"), msg.Key)
	assert.Equal(t, "adoptions.adoption.requested", msg.Headers["event-type"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "A1", decoded["adoptionId"])
	assert.Equal(t, "U1", decoded["userId"])
}

func TestKafkaPublisherReturnsProducerError(t *testing.T) {
	boom := errors.New("broker down")
	pub := NewKafkaPublisher(&recordingProducer{err: boom}, "t")
	assert.ErrorIs(t, pub.Publish(context.Background(), sampleEvent()), boom)
}

func TestRabbitPublisherTypesMessage(t *testing.T) {
	rec := &recordingJSON{}
	require.NoError(t, NewRabbitPublisher(rec).Publish(context.Background(), sampleEvent()))
	assert.Equal(t, []string{"adoptions.adoption.requested"}, rec.types)
	assert.Equal(t, sampleEvent(), rec.bodies[0])
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	require.NoError(t, NewLogPublisher(logger).Publish(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), `"event.type":"adoptions.adoption.requested"`)
	assert.Contains(t, buf.String(), `"pet.id":"P1"`)
}
