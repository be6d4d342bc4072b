/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fnbridge/fnbridge/metrics"
)

func TestBridgeRecords(t *testing.T) {
	// The default global meter provider is a no-op; recording must still
	// be safe.
	b := metrics.New("fnbridge.test")
	ctx := context.Background()
	b.RecordSchemaGenerated(ctx, "main.tools.add")
	b.RecordToolCall(ctx, "main__tools__add")
	b.RecordExecutionResult(ctx, "main__tools__add", "success")
	b.RecordExecutionResult(ctx, "main__tools__add", "error")
}

func TestBridgeEnricher(t *testing.T) {
	b := metrics.New("fnbridge.test")
	enriched := false
	b.SetAttributeEnricher(func(_ context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
		enriched = true
		return append(baseAttrs, attribute.String("workspace", "test"))
	})
	b.RecordToolCall(context.Background(), "main__tools__add")
	if !enriched {
		t.Error("enricher was not invoked")
	}
}
