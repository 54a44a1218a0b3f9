package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/shared/constant"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Producer publishes domain events to a Kafka topic.
type Producer interface {
	Publish(ctx context.Context, message Message) error
	Close() error
}

type producerImpl struct {
	writer *kafkaGo.Writer
	otel   otel.Otel
	enable bool
}

func NewProducer(cfg *config.Config, otl otel.Otel) Producer {
	if !cfg.External.Kafka.Enable {
		log.Warn().Msg("Kafka producer disabled, events will be dropped")

		return &producerImpl{otel: otl}
	}

	writer := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(cfg.External.Kafka.Brokers...),
		Topic:    cfg.External.Kafka.BookingTopic,
		Balancer: &kafkaGo.LeastBytes{},
	}

	log.Info().
		Strs("brokers", cfg.External.Kafka.Brokers).
		Str("topic", cfg.External.Kafka.BookingTopic).
		Msg("Kafka producer initialized")

	return &producerImpl{
		writer: writer,
		otel:   otl,
		enable: true,
	}
}

func (p *producerImpl) Publish(ctx context.Context, message Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !p.enable {
		return nil
	}

	kafkaMessage, err := message.ToKafkaMessage()
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, kafkaMessage); err != nil {
		log.Error().Err(err).Str("key", message.Key).Msg("failed to publish event")

		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *producerImpl) Close() error {
	if p.writer == nil {
		return nil
	}

	return p.writer.Close() //nolint:wrapcheck
}
