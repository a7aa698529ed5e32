package order

import (
	"context"

	"github.com/bookshop/backend/internal/domain/shared"
)

// PublishEvents drains an aggregate's recorded events into the publisher
// once the owning transaction has committed. Event delivery is best
// effort: a publish failure never fails the operation.
func PublishEvents(ctx context.Context, publisher shared.EventPublisher, aggregates ...shared.AggregateRoot) {
	if publisher == nil {
		return
	}
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = publisher.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}
