package clients

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/personaforge/internal/models"
)

var (
	kafkaProducer *kafka.Producer
	kafkaOnce     sync.Once
)

// InitKafkaProducer sets up the optional persona-event producer. Callers
// skip initialization entirely when no broker is configured.
func InitKafkaProducer() error {
	var initErr error
	kafkaOnce.Do(func() {
		broker := os.Getenv("KAFKA_BROKER")
		slog.Info("[KafkaClient] Initializing Kafka Producer...",
			slog.String("broker", broker))

		p, err := kafka.NewProducer(&kafka.ConfigMap{
			"bootstrap.servers":   broker,
			"security.protocol":   "PLAINTEXT",
			"api.version.request": "true",
			"acks":                "all",
		})
		if err != nil {
			initErr = fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
			return
		}

		kafkaProducer = p
		slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	})
	return initErr
}

func CloseKafkaProducer() {
	if kafkaProducer == nil {
		return
	}
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := kafkaProducer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kafkaProducer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

// PublishPersonaEvent announces a completed generation on the given topic,
// keyed by generation ID.
func PublishPersonaEvent(topic string, event models.PersonaEvent) error {
	if kafkaProducer == nil {
		return fmt.Errorf("[KafkaClient] producer not initialized")
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.GenerationID),
		Value:          jsonData,
	}

	deliveryChan := make(chan kafka.Event, 1)
	if err := kafkaProducer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce event: %w", err)
	}

	e := <-deliveryChan
	if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
		return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
	}

	slog.Info("[KafkaClient] Persona event published",
		slog.String("topic", topic),
		slog.String("generation_id", event.GenerationID))
	return nil
}
