package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/go-amqp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vennekilde/go-ordmap/ordmap"
)

const senderApplication = "go-ordmap"

type messageSender interface {
	Send(ctx context.Context, msg *amqp.Message) error
}

// entryMessage builds the message an entry is published as.
func entryMessage(position int, e *ordmap.Entry, creationTime time.Time) *amqp.Message {
	messageID := fmt.Sprintf("%d-%s", position, uuid.New().String())
	return &amqp.Message{
		Data: [][]byte{[]byte(fmt.Sprintf("%s = %d", e.Key(), e.Value()))},
		ApplicationProperties: map[string]interface{}{
			"key":               e.Key(),
			"value":             int64(e.Value()),
			"position":          int64(position),
			"senderApplication": senderApplication,
		},
		Properties: &amqp.MessageProperties{
			MessageID:    messageID,
			CreationTime: &creationTime,
		},
		Header: &amqp.MessageHeader{
			Durable: true,
		},
	}
}

// publishMap sends every entry of m in insertion order.
func publishMap(ctx context.Context, sender messageSender, m ordmap.Map, timeout time.Duration) (*TransferReport, error) {
	it, err := m.Iterate()
	if err != nil {
		return nil, fmt.Errorf("Iterating map: %w", err)
	}
	defer it.Dispose()

	report := NewTransferReport("published", m.Size())
	for position := 0; ; position++ {
		e, ok := it.Next()
		if !ok {
			break
		}
		creationTime := time.Now()
		msg := entryMessage(position, e, creationTime)

		sendCtx, cancel := context.WithTimeout(ctx, timeout)
		err := sender.Send(sendCtx, msg)
		cancel()
		if err != nil {
			return report, fmt.Errorf("Sending entry %q: %w", e.Key(), err)
		}
		report.Add(time.Since(creationTime))
		zap.L().Debug("published entry",
			zap.String("key", e.Key()),
			zap.Int("value", e.Value()),
			zap.Any("messageID", msg.Properties.MessageID))
	}
	if err := it.Err(); err != nil {
		return report, err
	}
	report.Finish()
	return report, nil
}
