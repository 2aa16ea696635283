package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Analytics publishes game events to Kafka. A nil *Analytics is a valid
// no-op emitter, so the server runs without a broker configured.
type Analytics struct {
	writer *kafka.Writer
}

func NewAnalytics(brokers, topic string) *Analytics {
	if brokers == "" {
		return nil
	}
	return &Analytics{writer: &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}}
}

func (a *Analytics) Emit(event string, payload map[string]any) {
	if a == nil || a.writer == nil {
		return
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC()
	b, _ := json.Marshal(payload)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.writer.WriteMessages(ctx, kafka.Message{Value: b}); err != nil {
		log.Println("server: kafka emit err:", err)
	}
}

func (a *Analytics) Close() {
	if a == nil || a.writer == nil {
		return
	}
	a.writer.Close()
}
