// Package kafka wraps a kafka-go writer for one-off operational events,
// like alerting when recovery finds corruption in previously flushed data.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *Producer) Send(
	ctx context.Context,
	key []byte,
	value []byte,
) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

// CorruptionAlert describes a recovery pass that found corrupt data.
type CorruptionAlert struct {
	Path       string `json:"path"`
	SafeOffset int64  `json:"safe_offset"`
	Records    int    `json:"records"`
	Time       string `json:"time"`
}

// SendCorruptionAlert publishes an alert keyed by log path, so downstream
// consumers can dedupe per file.
func (p *Producer) SendCorruptionAlert(ctx context.Context, alert CorruptionAlert) error {
	if alert.Time == "" {
		alert.Time = time.Now().Format(time.RFC3339)
	}
	value, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return p.Send(ctx, []byte(alert.Path), value)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
