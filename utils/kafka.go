package utils

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/yururi-apps/schedule-coordination-backend/config"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the email-job producer. Kafka is optional: without
// brokers configured the notification service sends emails directly.
func InitializeKafka(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("ℹ️ Kafka not configured, email jobs will be sent in-process")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEmailTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("✅ Kafka producer ready (topic: %s)", cfg.KafkaEmailTopic)
}

func KafkaEnabled() bool {
	return kafkaWriter != nil
}

// PublishEmailJob queues a serialized email job on the email topic
func PublishEmailJob(ctx context.Context, payload []byte) error {
	return kafkaWriter.WriteMessages(ctx, kafka.Message{Value: payload})
}
