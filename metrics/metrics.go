/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for schema generation
// and function execution.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// AttributeEnricher enriches metric attributes with additional context.
// Embedders can add their own dimensions (workspace, agent run, model)
// without coupling this package to a specific deployment.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue

// Bridge provides counters for the catalog-to-tool pipeline: schemas
// generated, tool calls dispatched, and execution outcomes. It degrades
// gracefully: if a counter fails to initialize the Bridge logs a warning
// and records into a no-op instrument instead of failing.
type Bridge struct {
	meter        metric.Meter
	schemas      metric.Int64Counter
	toolCalls    metric.Int64Counter
	executions   metric.Int64Counter
	attrEnricher AttributeEnricher
}

// New creates a Bridge with the specified meter name. The meter name
// should be unified across an application, with the function name serving
// as a dimension on the recorded metrics.
func New(meterName string) *Bridge {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	schemas, err := meter.Int64Counter("catalog.schema.generated",
		metric.WithDescription("The number of tool schemas generated from catalog functions"),
		metric.WithUnit("{schemas}"))
	if err != nil {
		slog.Warn("Failed to create schema counter, metrics will be disabled", "error", err, "meter", meterName)
		schemas = noop.Int64Counter{}
	}

	toolCalls, err := meter.Int64Counter("catalog.tool.calls",
		metric.WithDescription("The number of tool calls dispatched to catalog functions"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create tool call counter, metrics will be disabled", "error", err, "meter", meterName)
		toolCalls = noop.Int64Counter{}
	}

	executions, err := meter.Int64Counter("catalog.execution.results",
		metric.WithDescription("The number of function execution results by status"),
		metric.WithUnit("{results}"))
	if err != nil {
		slog.Warn("Failed to create execution counter, metrics will be disabled", "error", err, "meter", meterName)
		executions = noop.Int64Counter{}
	}

	return &Bridge{
		meter:      meter,
		schemas:    schemas,
		toolCalls:  toolCalls,
		executions: executions,
	}
}

// SetAttributeEnricher sets the attribute enricher for this Bridge. The
// enricher runs before each recording to add contextual attributes.
func (b *Bridge) SetAttributeEnricher(enricher AttributeEnricher) {
	b.attrEnricher = enricher
}

func (b *Bridge) enrich(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	if b.attrEnricher != nil {
		return b.attrEnricher(ctx, baseAttrs)
	}
	return baseAttrs
}

// RecordSchemaGenerated records one schema generation for a function.
func (b *Bridge) RecordSchemaGenerated(ctx context.Context, functionName string) {
	attrs := b.enrich(ctx, []attribute.KeyValue{
		attribute.String("function", functionName),
	})
	b.schemas.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordToolCall records one tool call dispatched to a function.
func (b *Bridge) RecordToolCall(ctx context.Context, toolName string) {
	attrs := b.enrich(ctx, []attribute.KeyValue{
		attribute.String("tool", toolName),
	})
	b.toolCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordExecutionResult records the outcome of one function execution.
// Status is "success" or "error".
func (b *Bridge) RecordExecutionResult(ctx context.Context, toolName, status string) {
	attrs := b.enrich(ctx, []attribute.KeyValue{
		attribute.String("tool", toolName),
		attribute.String("status", status),
	})
	b.executions.Add(ctx, 1, metric.WithAttributes(attrs...))
}
