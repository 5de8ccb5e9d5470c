//go:build !no_otel

// Package otel shims OpenTelemetry tracing so that it can be compiled out
// with the no_otel build tag.
package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
