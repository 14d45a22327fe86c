package utils

import (
	"testing"

	"github.com/yururi-apps/schedule-coordination-backend/config"
)

func TestInitializeKafkaUsesConfig(t *testing.T) {
	defer func() { kafkaWriter = nil }()

	kafkaWriter = nil
	InitializeKafka(&config.Config{})
	if KafkaEnabled() {
		t.Fatal("Kafka must stay disabled without brokers in the config")
	}

	InitializeKafka(&config.Config{
		KafkaBrokers:    []string{"localhost:9092"},
		KafkaEmailTopic: "email-jobs",
	})
	if !KafkaEnabled() {
		t.Fatal("Kafka must be enabled when the config carries brokers")
	}
	if kafkaWriter.Topic != "email-jobs" {
		t.Fatalf("producer topic = %q, want the configured email topic", kafkaWriter.Topic)
	}
}
