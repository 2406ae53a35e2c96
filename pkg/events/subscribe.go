package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/usedmarket/pkg/logger"
)

// Handler processes one delivered message. Returning an error triggers a retry
// unless it wraps ErrMalformedEvent. Handlers see at-least-once delivery and
// must tolerate duplicates.
type Handler func(ctx context.Context, msg *message.Message) error

// RetryPolicy bounds how often a failing handler is re-run for one message.
// Delays double after each failed attempt.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultRetry tries three times, waiting 1s then 2s.
var DefaultRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

const errBuffer = 100

// Subscribe consumes topic until ctx ends or the bus closes. Each message is
// acked after h succeeds. When every attempt fails the message is nacked and
// redelivered. A malformed message is acked and dropped, since redelivering it
// would stall the topic for the consumer group. Failures of either kind are
// sent on the returned channel, which callers must drain.
// The handler context carries the publisher's trace.
func (b *EventBus) Subscribe(ctx context.Context, topic string, h Handler) (<-chan error, error) {
	msgs, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe %s: %w", topic, err)
	}

	errs := make(chan error, errBuffer)
	b.handlers.Add(1)
	go func() {
		defer b.handlers.Done()
		defer close(errs)
		for msg := range msgs {
			b.deliver(extractTrace(ctx, msg), topic, msg, h, errs)
		}
	}()
	return errs, nil
}

func (b *EventBus) deliver(ctx context.Context, topic string, msg *message.Message, h Handler, errs chan<- error) {
	err := b.retry.run(ctx, msg, h, b.log)
	switch {
	case err == nil:
		msg.Ack()
		return
	case errors.Is(err, ErrMalformedEvent):
		b.log.ErrorContext(ctx, "events: dropping malformed message",
			"topic", topic,
			"message_uuid", msg.UUID,
			"error", err,
		)
		msg.Ack()
	default:
		msg.Nack()
	}

	err = fmt.Errorf("%s event %s: %w", topic, msg.Metadata.Get(MetadataEventID), err)
	select {
	case errs <- err:
	default:
		b.log.ErrorContext(ctx, "events: error channel full", "topic", topic, "error", err)
	}
}

// run calls h until it succeeds, the attempts are used up, or ctx ends.
// A malformed event is returned after the first attempt.
func (p RetryPolicy) run(ctx context.Context, msg *message.Message, h Handler, log logger.Logger) error {
	delay := p.BaseDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = h(ctx, msg); err == nil {
			return nil
		}
		if errors.Is(err, ErrMalformedEvent) {
			return err
		}
		if attempt >= p.Attempts {
			return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		}
		log.WarnContext(ctx, "events: handler failed",
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
}
