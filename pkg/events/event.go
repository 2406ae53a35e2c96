// Package events carries marketplace domain events from the request path to
// cmd/worker. Repositories publish inside the SQL transaction that writes the
// row, so a listing or chat message and its event commit or roll back together.
//
// Transport is Watermill over the same Postgres store. The API process runs
// in Outbox mode: publishes land in an internal queue and a forwarder moves
// them to their topics. The worker consumes in Direct mode.
package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// MetadataEventID is the message metadata key holding Event.ID.
const MetadataEventID = "event_id"

// Event is a domain fact that can be published on the bus.
type Event interface {
	// Topic names the Watermill topic, e.g. "item.listed".
	Topic() string
	// ID is unique per publish; consumers use it to drop redeliveries.
	ID() string
}

// ErrMalformedEvent marks a payload that can never be handled. Subscribe acks
// such messages instead of retrying them.
var ErrMalformedEvent = errors.New("events: malformed event")

// Decode unmarshals a delivered message payload into T.
// Failures wrap ErrMalformedEvent.
func Decode[T any](msg *message.Message) (T, error) {
	var evt T
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("%w: message %s: %w", ErrMalformedEvent, msg.UUID, err)
	}
	return evt, nil
}
