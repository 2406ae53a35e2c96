package events

import (
	"context"
	"errors"
	"fmt"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
)

var (
	errNotOutbox        = errors.New("events: forwarder needs an Outbox bus")
	errForwarderStarted = errors.New("events: forwarder already started")
)

// StartForwarder runs the outbox forwarder in the background and returns once
// it is consuming. Only valid on an Outbox bus, and only once.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if b.mode != Outbox {
		return errNotOutbox
	}
	if b.fwd != nil {
		return errForwarderStarted
	}

	beginner := b.db
	outbox, err := watermillsql.NewSubscriber(beginner, watermillsql.SubscriberConfig{
		SchemaAdapter:    schema,
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    forwarderGroup,
	}, b.wmLog)
	if err != nil {
		return fmt.Errorf("events: outbox subscriber: %w", err)
	}

	topics, err := watermillsql.NewPublisher(beginner, watermillsql.PublisherConfig{
		SchemaAdapter:        schema,
		AutoInitializeSchema: true,
	}, b.wmLog)
	if err != nil {
		_ = outbox.Close()
		return fmt.Errorf("events: topic publisher: %w", err)
	}

	fwd, err := forwarder.NewForwarder(outbox, topics, b.wmLog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = topics.Close()
		_ = outbox.Close()
		return fmt.Errorf("events: new forwarder: %w", err)
	}
	b.fwd = fwd

	b.handlers.Add(1)
	go func() {
		defer b.handlers.Done()
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
		}
	}()

	select {
	case <-fwd.Running():
		b.log.InfoContext(ctx, "events: forwarder running", "topic", outboxTopic)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
