package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	sums := map[string]metricdata.Sum[int64]{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if s, ok := m.Data.(metricdata.Sum[int64]); ok {
				sums[m.Name] = s
			}
		}
	}
	return sums
}

func TestMarketMetrics_Counts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := newMarketMetrics(mp.Meter(meterName))
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	ctx := context.Background()
	m.ItemListed(ctx, "books")
	m.ItemListed(ctx, "books")
	m.ItemListed(ctx, "bikes")
	m.MessageSent(ctx)

	sums := collectSums(t, reader)

	listed, ok := sums["market.items.listed"]
	if !ok {
		t.Fatal("market.items.listed not collected")
	}
	byCategory := map[string]int64{}
	for _, dp := range listed.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("category"))
		byCategory[v.AsString()] = dp.Value
	}
	if byCategory["books"] != 2 || byCategory["bikes"] != 1 {
		t.Errorf("unexpected listing counts: %v", byCategory)
	}

	sent, ok := sums["market.chat.messages_sent"]
	if !ok || len(sent.DataPoints) != 1 || sent.DataPoints[0].Value != 1 {
		t.Errorf("expected one message sent, got %+v", sent)
	}
}
