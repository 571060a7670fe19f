package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricOpts holds options for creating metrics
type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

// Counter wraps an OTel counter for easier use
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new counter metric
func NewCounter(opts MetricOpts) (*Counter, error) {
	meter := GetMeter()
	counter, err := meter.Int64Counter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: counter}, nil
}

// Add increments the counter by the given value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by 1
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram wraps an OTel histogram for easier use
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a new histogram metric
func NewHistogram(opts MetricOpts) (*Histogram, error) {
	meter := GetMeter()
	histogram, err := meter.Float64Histogram(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: histogram}, nil
}

// Record records a value in the histogram
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// Common metric attribute keys
const (
	AttrTenantID   = "tenant.id"
	AttrEntityType = "entity.type"
	AttrCacheLayer = "cache.layer"
	AttrErrorType  = "error.type"
)

// TenantAttr tags a measurement with the tenant it was made for
func TenantAttr(tenantID string) attribute.KeyValue {
	return attribute.String(AttrTenantID, tenantID)
}

// EntityAttr tags a measurement with the entity collection involved
func EntityAttr(entity string) attribute.KeyValue {
	return attribute.String(AttrEntityType, entity)
}

// CacheLayerAttr tags a cache measurement with the layer that served it
func CacheLayerAttr(layer string) attribute.KeyValue {
	return attribute.String(AttrCacheLayer, layer)
}
