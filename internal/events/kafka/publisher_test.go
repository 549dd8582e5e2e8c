package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"accountsvc/internal/events"

	"github.com/segmentio/kafka-go"
)

type stubWriter struct {
	writeFn func(ctx context.Context, msgs ...kafka.Message) error
	closed  bool
}

func (s *stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	return s.writeFn(ctx, msgs...)
}

func (s *stubWriter) Close() error {
	s.closed = true
	return nil
}

func TestPublishMovement(t *testing.T) {
	writer := &stubWriter{writeFn: func(_ context.Context, msgs ...kafka.Message) error {
		if len(msgs) != 1 {
			t.Fatalf("expected one message, got %d", len(msgs))
		}
		if string(msgs[0].Key) != "478758" {
			t.Fatalf("unexpected key: %s", msgs[0].Key)
		}
		var decoded events.MovementRecorded
		if err := json.Unmarshal(msgs[0].Value, &decoded); err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if decoded.EventID != "evt-1" || decoded.MovementID != 9 {
			t.Fatalf("unexpected payload: %#v", decoded)
		}
		return nil
	}}
	publisher := &Publisher{writer: writer}
	err := publisher.PublishMovement(context.Background(), events.MovementRecorded{EventID: "evt-1", MovementID: 9, AccountNumber: "478758"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := publisher.Close(); err != nil || !writer.closed {
		t.Fatalf("expected writer to be closed")
	}
}

func TestPublishMovementPropagatesWriteError(t *testing.T) {
	boom := errors.New("broker down")
	publisher := &Publisher{writer: &stubWriter{writeFn: func(context.Context, ...kafka.Message) error { return boom }}}
	if err := publisher.PublishMovement(context.Background(), events.MovementRecorded{}); !errors.Is(err, boom) {
		t.Fatalf("expected broker error, got %v", err)
	}
}

func TestNewPublisherDefaultsTopic(t *testing.T) {
	publisher := NewPublisher([]string{"localhost:9092"}, "")
	writer, ok := publisher.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("unexpected writer type %T", publisher.writer)
	}
	if writer.Topic != events.TopicMovementRecorded {
		t.Fatalf("unexpected topic: %s", writer.Topic)
	}
	if writer.BatchTimeout != batchTimeout {
		t.Fatalf("unexpected batch timeout: %s", writer.BatchTimeout)
	}
}
