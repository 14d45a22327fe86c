package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/yururi-apps/schedule-coordination-backend/config"
)

// StartKafkaConsumer drains the email-job topic in the background. No-op when
// Kafka is not configured (the producer side falls back to direct sends).
func StartKafkaConsumer(svc Service, cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: "schedule-email-sender",
		Topic:   cfg.KafkaEmailTopic,
	})

	go func() {
		defer reader.Close()
		log.Printf("✅ Kafka email consumer started (topic: %s)", cfg.KafkaEmailTopic)

		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("❌ Kafka read error, stopping consumer: %v", err)
				return
			}

			var job EmailJob
			if err := json.Unmarshal(msg.Value, &job); err != nil {
				log.Printf("⚠️ Dropping malformed email job: %v", err)
				continue
			}

			if err := svc.Deliver(context.Background(), job); err != nil {
				// already recorded in the notification log; do not retry here
				log.Printf("❌ Email delivery failed for %s job: %v", job.Kind, err)
			}
		}
	}()
}
