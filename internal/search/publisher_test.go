package search

import (
	"context"
	"testing"
)

// Close returns nothing on a Publisher, so shutdown paths call it bare.
var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*NoopPublisher)(nil)
)

func TestNoopPublisher_DropsEventsAndCloses(t *testing.T) {
	var p Publisher = NewNoopPublisher()

	p.PublishUpsert(context.Background(), "acme", "tour", "t1", "canal-cruise", "Canal Cruise")
	p.PublishDelete(context.Background(), "acme", "tour", "t1")
	p.Close()
}
