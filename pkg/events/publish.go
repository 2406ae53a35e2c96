package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// PublishInTx writes evt inside tx. Nothing is visible to consumers unless
// tx commits.
func (b *EventBus) PublishInTx(ctx context.Context, tx *sql.Tx, evt Event) error {
	msg, err := newMessage(ctx, evt)
	if err != nil {
		return err
	}

	pub, err := b.txPublisher(tx)
	if err != nil {
		return err
	}
	if err := pub.Publish(evt.Topic(), msg); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish %s: %w", evt.Topic(), err)
	}
	return nil
}

// newMessage encodes evt as JSON and stamps its ID and the caller's trace.
func newMessage(ctx context.Context, evt Event) (*message.Message, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("events: encode %s: %w", evt.Topic(), err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetadataEventID, evt.ID())
	injectTrace(ctx, msg)
	return msg, nil
}

func injectTrace(ctx context.Context, msg *message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}
