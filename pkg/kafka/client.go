// Package kafka wires the product-index pipeline to the message queue.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taller-go/internal/config"
	"taller-go/pkg/database"
	"taller-go/pkg/log"
	"taller-go/pkg/tasks"

	"github.com/segmentio/kafka-go"
)

// TaskProcessor handles one index task. The consumer only knows this
// interface, not the concrete pipeline.
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.ProductIndexTask) error
}

const maxAttempts = 3

var producer *kafka.Writer

// InitProducer initializes the Kafka producer.
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("kafka producer initialized")
}

// ProduceIndexTask publishes one product index task.
func ProduceIndexTask(task tasks.ProductIndexTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return producer.WriteMessages(context.Background(),
		kafka.Message{Value: taskBytes},
	)
}

// StartConsumer runs the product-index consumer loop. Failed tasks are
// retried by withholding the offset; a Redis counter caps retries so one
// bad product cannot block the partition.
func StartConsumer(cfg config.KafkaConfig, processor TaskProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "taller-indexer",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	log.Infof("kafka consumer listening on topic '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("fetching kafka message failed", err)
			break
		}

		var task tasks.ProductIndexTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("unparseable kafka message: %v, value: %s", err, string(m.Value))
			// malformed payloads are committed so they don't wedge the queue
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("committing bad message failed: %v", err)
			}
			continue
		}

		if err := processor.Process(context.Background(), task); err != nil {
			log.Errorf("indexing product %d failed: %v", task.ProductID, err)
			attemptsKey := fmt.Sprintf("kafka:attempts:product:%d", task.ProductID)
			attempts, incErr := database.RDB.Incr(context.Background(), attemptsKey).Result()
			if incErr != nil {
				// Redis down: withhold the offset and let Kafka redeliver
				continue
			}
			_ = database.RDB.Expire(context.Background(), attemptsKey, 24*time.Hour).Err()
			if attempts >= maxAttempts {
				log.Errorf("giving up on product %d after %d attempts", task.ProductID, attempts)
				if err := r.CommitMessages(context.Background(), m); err != nil {
					log.Errorf("committing kafka offset failed: %v", err)
				}
			}
			continue
		}

		_ = database.RDB.Del(context.Background(), fmt.Sprintf("kafka:attempts:product:%d", task.ProductID)).Err()
		if err := r.CommitMessages(context.Background(), m); err != nil {
			log.Errorf("committing kafka offset failed: %v", err)
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("closing kafka consumer failed: %v", err)
	}
}
