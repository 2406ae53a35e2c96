package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/usedmarket/pkg/logger"
)

// Mode selects how publishes reach their topic.
type Mode int

const (
	// Direct writes each message straight to its topic table.
	Direct Mode = iota
	// Outbox enqueues messages for the forwarder started by StartForwarder.
	Outbox
)

const (
	outboxTopic         = "market_outbox"
	forwarderGroup      = "market-forwarder"
	handlerDrainTimeout = 30 * time.Second
)

var schema = watermillsql.DefaultPostgreSQLSchema{}

// EventBus publishes and consumes domain events through Postgres.
type EventBus struct {
	db         *sql.DB
	mode       Mode
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	retry      RetryPolicy
	log        logger.Logger
	wmLog      *wmLogger
	handlers   sync.WaitGroup
}

// New builds an EventBus on an open pool. The pool is shared with the
// storage gateway and is not closed by Close. Instances with the same
// consumerGroup split deliveries between them instead of each receiving all.
func New(db *sql.DB, consumerGroup string, mode Mode, log logger.Logger) (*EventBus, error) {
	wlog := &wmLogger{log: log}
	sub, err := watermillsql.NewSubscriber(
		db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    schema,
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    consumerGroup,
		},
		wlog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		db:         db,
		mode:       mode,
		subscriber: sub,
		retry:      DefaultRetry,
		log:        log,
		wmLog:      wlog,
	}, nil
}

// txPublisher returns a publisher whose writes join tx.
func (b *EventBus) txPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(
		tx,
		watermillsql.PublisherConfig{SchemaAdapter: schema},
		b.wmLog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	if b.mode == Outbox {
		return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic}), nil
	}
	return pub, nil
}

// Ping reports whether the bus can reach its store.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping: %w", err)
	}
	return nil
}

// Close stops consuming, stops the forwarder, then waits for in-flight
// handlers up to handlerDrainTimeout.
func (b *EventBus) Close() error {
	var errs []error
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
	}
	if b.fwd != nil {
		if err := b.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		b.handlers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(handlerDrainTimeout):
		b.log.Error("events: handlers still running at shutdown")
	}
	return errors.Join(errs...)
}
