package service

import (
	"context"
	"sync"

	"github.com/tripova/tourbase/pkg/telemetry"
)

var (
	slugRetryOnce    sync.Once
	slugRetryCounter *telemetry.Counter
)

// countSlugRetry records a create retry after losing a slug uniqueness race.
// The counter is shared across the content services.
func countSlugRetry(ctx context.Context, entity string) {
	slugRetryOnce.Do(func() {
		slugRetryCounter, _ = telemetry.NewCounter(telemetry.MetricOpts{
			Name:        "slug_retries_total",
			Description: "Create retries after a slug uniqueness race",
			Unit:        "1",
		})
	})
	if slugRetryCounter != nil {
		slugRetryCounter.Inc(ctx, telemetry.EntityAttr(entity))
	}
}
