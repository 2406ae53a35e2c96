package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/usedmarket"

// MarketMetrics counts domain events as the worker consumes them.
type MarketMetrics struct {
	itemsListed  metric.Int64Counter
	messagesSent metric.Int64Counter
}

// NewMarketMetrics registers the marketplace counters on the global meter
// provider installed by Setup.
func NewMarketMetrics() (*MarketMetrics, error) {
	return newMarketMetrics(otel.Meter(meterName))
}

func newMarketMetrics(meter metric.Meter) (*MarketMetrics, error) {
	itemsListed, err := meter.Int64Counter("market.items.listed",
		metric.WithDescription("Listings published to the marketplace"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("items listed counter: %w", err)
	}
	messagesSent, err := meter.Int64Counter("market.chat.messages_sent",
		metric.WithDescription("Chat messages stored across all rooms"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("messages sent counter: %w", err)
	}
	return &MarketMetrics{itemsListed: itemsListed, messagesSent: messagesSent}, nil
}

// ItemListed records one new listing in category.
func (m *MarketMetrics) ItemListed(ctx context.Context, category string) {
	m.itemsListed.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

// MessageSent records one stored chat message.
func (m *MarketMetrics) MessageSent(ctx context.Context) {
	m.messagesSent.Add(ctx, 1)
}
