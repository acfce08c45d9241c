package core

import (
	"context"
	"net/http"
	"time"
)

// Logger interface - minimal logging interface
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// Telemetry interface - optional telemetry support
type Telemetry interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
	RecordMetric(name string, value float64, labels map[string]string)
}

// Span represents a telemetry span
type Span interface {
	End()
	SetAttribute(key string, value interface{})
	RecordError(err error)
}

// HTTPInstrumenter is implemented by telemetry providers that can wrap
// outbound HTTP transports with tracing. The catalog client picks it up when
// the configured Telemetry supports it.
type HTTPInstrumenter interface {
	HTTPTransport(base http.RoundTripper) http.RoundTripper
}

// Memory is the scoped persistence store: an opaque key-value facility that
// survives process restarts on the same device (or, in hosted deployments, a
// Redis namespace). The basket snapshot lives under a single fixed key.
type Memory interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// HapticIntensity selects the strength of a feedback pulse.
type HapticIntensity int

const (
	HapticLight HapticIntensity = iota
	HapticMedium
	HapticHeavy
)

// Haptics is the device feedback seam. BasketStore pulses before each add so
// the user feels the tap even when the follow-up persistence write fails.
type Haptics interface {
	Pulse(intensity HapticIntensity)
}

// Default no-op implementations

// NoOpLogger provides a no-op logger implementation
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Error(msg string, fields map[string]interface{}) {}
func (n *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}

// NoOpTelemetry provides a no-op telemetry implementation
type NoOpTelemetry struct{}

func (n *NoOpTelemetry) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return ctx, &NoOpSpan{}
}

func (n *NoOpTelemetry) RecordMetric(name string, value float64, labels map[string]string) {}

// NoOpSpan provides a no-op span implementation
type NoOpSpan struct{}

func (n *NoOpSpan) End()                                       {}
func (n *NoOpSpan) SetAttribute(key string, value interface{}) {}
func (n *NoOpSpan) RecordError(err error)                      {}

// NoOpHaptics provides a no-op haptics implementation
type NoOpHaptics struct{}

func (n *NoOpHaptics) Pulse(intensity HapticIntensity) {}
