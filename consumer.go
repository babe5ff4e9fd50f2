package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Azure/go-amqp"
	"go.uber.org/zap"

	"github.com/vennekilde/go-ordmap/ordmap"
)

var errInvalidEntryMessage = errors.New("invalid entry message")

type messageReceiver interface {
	Receive(ctx context.Context) (*amqp.Message, error)
	AcceptMessage(ctx context.Context, msg *amqp.Message) error
	RejectMessage(ctx context.Context, msg *amqp.Message, e *amqp.Error) error
	ReleaseMessage(ctx context.Context, msg *amqp.Message) error
	Address() string
}

func messageValue(v interface{}) (int, error) {
	switch value := v.(type) {
	case int:
		return value, nil
	case int32:
		return int(value), nil
	case int64:
		return int(value), nil
	case uint32:
		return int(value), nil
	case string:
		return strconv.Atoi(value)
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

// applyMessage puts the entry carried by msg into m.
func applyMessage(m ordmap.Map, msg *amqp.Message) error {
	key, ok := msg.ApplicationProperties["key"].(string)
	if !ok {
		return fmt.Errorf("%w: missing key", errInvalidEntryMessage)
	}
	value, err := messageValue(msg.ApplicationProperties["value"])
	if err != nil {
		return fmt.Errorf("%w: key %q: %v", errInvalidEntryMessage, key, err)
	}
	return m.Put(key, value)
}

// drainInto receives entry messages until the queue stays idle for
// idleTimeout. Malformed messages are rejected and skipped, a message that
// cannot be stored is released back to the queue and stops the drain.
func drainInto(ctx context.Context, receiver messageReceiver, m ordmap.Map, idleTimeout time.Duration) (*TransferReport, error) {
	report := NewTransferReport("consumed", 0)
	zap.L().Info("draining amqp queue", zap.String("queue", receiver.Address()))
	for {
		recvCtx, cancel := context.WithTimeout(ctx, idleTimeout)
		msg, err := receiver.Receive(recvCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			return report, fmt.Errorf("Reading message from AMQP: %w", err)
		}

		if err := applyMessage(m, msg); err != nil {
			if errors.Is(err, errInvalidEntryMessage) {
				zap.L().Warn("rejecting message", zap.Error(err), zap.Any("ApplicationProperties", msg.ApplicationProperties))
				report.Skip()
				if err := receiver.RejectMessage(ctx, msg, &amqp.Error{
					Condition:   amqp.ErrorCondition("amqp:decode-error"),
					Description: err.Error(),
				}); err != nil {
					return report, fmt.Errorf("Rejecting message from AMQP: %w", err)
				}
				continue
			}
			if releaseErr := receiver.ReleaseMessage(ctx, msg); releaseErr != nil {
				zap.L().Warn("unable to release message", zap.Error(releaseErr))
			}
			return report, fmt.Errorf("Storing entry: %w", err)
		}

		if err := receiver.AcceptMessage(ctx, msg); err != nil {
			return report, fmt.Errorf("Accepting message from AMQP: %w", err)
		}
		var flightTime time.Duration
		if msg.Properties != nil && msg.Properties.CreationTime != nil {
			flightTime = time.Since(*msg.Properties.CreationTime)
		}
		report.Add(flightTime)
		if c := report.Stats.Count(); c%100 == 0 {
			zap.L().Info("consumed entries so far", zap.Int64("count", c), zap.String("queue", receiver.Address()))
		}
	}
	report.Finish()
	zap.L().Info("drained amqp queue",
		zap.Int64("consumed", report.Stats.Count()),
		zap.Int("skipped", report.Skipped),
		zap.String("queue", receiver.Address()))
	return report, nil
}
