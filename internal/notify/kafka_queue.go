package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaQueue хранит запросы в топике Kafka, чтобы они переживали перезапуск
// сервера и разбирались воркерами любого экземпляра.
type KafkaQueue struct {
	writer messageWriter
	reader messageReader
}

func NewKafkaQueue(brokers []string, topic, groupID string) *KafkaQueue {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("Kafka: не удалось записать %d уведомлений: %v", len(messages), err)
			}
		},
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &KafkaQueue{writer: writer, reader: reader}
}

func (q *KafkaQueue) Enqueue(ctx context.Context, req Request) error {
	value, err := json.Marshal(req)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(req.TicketID), Value: value}
	if err := q.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notify: kafka write: %w", err)
	}
	return nil
}

func (q *KafkaQueue) Dequeue(ctx context.Context) (Request, error) {
	for {
		msg, err := q.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return Request{}, ctx.Err()
			}
			return Request{}, fmt.Errorf("notify: kafka read: %w", err)
		}

		var req Request
		if err := json.Unmarshal(msg.Value, &req); err != nil || req.Recipient == "" {
			log.Printf("Kafka: пропущено некорректное уведомление (offset %d): %v", msg.Offset, err)
			continue
		}
		return req, nil
	}
}

func (q *KafkaQueue) Close() error {
	werr := q.writer.Close()
	rerr := q.reader.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
