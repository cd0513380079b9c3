package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type kafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier returns a Notifier that publishes reminder events as JSON
// to the given topic. The notification service consumes them from there and
// turns them into emails; this process never waits on delivery.
func NewKafkaNotifier(brokers []string, topic string) Notifier {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &kafkaNotifier{writer: writer}
}

func (n *kafkaNotifier) SendReminder(ctx context.Context, event ReminderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TaskID),
		Value: payload,
		Time:  time.Now(),
	})
}

func (n *kafkaNotifier) Close() error {
	return n.writer.Close()
}
