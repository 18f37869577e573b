package kafka

import (
	"context"

	"github.com/iwtcode/gcodeAdapter/internal/config"
	"github.com/iwtcode/gcodeAdapter/internal/interfaces"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает продюсер Kafka. Без адреса брокера отчеты никуда не отправляются.
func NewKafkaProducer(cfg *config.AppConfig) interfaces.KafkaService {
	if cfg.KafkaBroker == "" {
		return NopProducer{}
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: writer}
}

// Produce отправляет сообщение в Kafka
func (p *KafkaProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer отбрасывает сообщения
type NopProducer struct{}

func (NopProducer) Produce(context.Context, []byte, []byte) error { return nil }
func (NopProducer) Close() error                                  { return nil }
