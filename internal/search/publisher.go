package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/tripova/tourbase/pkg/config"
	"github.com/tripova/tourbase/pkg/logger"
)

// Event is one search index mutation. Every event carries the tenant id so
// the indexer can keep per-tenant indexes apart.
type Event struct {
	TenantID   string    `json:"tenant_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"` // upsert or delete
	Slug       string    `json:"slug,omitempty"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits search index events. Publishing is best effort: content
// writes must not fail because the broker is down.
type Publisher interface {
	PublishUpsert(ctx context.Context, tenantID, entityType, entityID, slug, title string)
	PublishDelete(ctx context.Context, tenantID, entityType, entityID string)
	Close()
}

// KafkaPublisher produces search events to a Kafka topic via franz-go
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to the configured brokers
func NewKafkaPublisher(cfg *config.KafkaConfig) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: cfg.Topic}, nil
}

// PublishUpsert emits an upsert event for a created or updated entity
func (p *KafkaPublisher) PublishUpsert(ctx context.Context, tenantID, entityType, entityID, slug, title string) {
	p.publish(ctx, Event{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     "upsert",
		Slug:       slug,
		Title:      title,
		OccurredAt: time.Now(),
	})
}

// PublishDelete emits a delete event for a removed entity
func (p *KafkaPublisher) PublishDelete(ctx context.Context, tenantID, entityType, entityID string) {
	p.publish(ctx, Event{
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     "delete",
		OccurredAt: time.Now(),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		logger.WithContext(ctx).Error("failed to marshal search event", zap.Error(err))
		return
	}

	record := &kgo.Record{
		// Keyed by tenant and entity so updates to one entity stay ordered
		// within a partition.
		Key:   []byte(event.TenantID + ":" + event.EntityType + ":" + event.EntityID),
		Value: value,
		Topic: p.topic,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			logger.WithContext(ctx).Warn("search event publish failed",
				zap.String("tenant_id", event.TenantID),
				zap.String("entity_type", event.EntityType),
				zap.String("entity_id", event.EntityID),
				zap.Error(err))
		}
	})
}

// Close flushes pending records and shuts the client down
func (p *KafkaPublisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}

// NoopPublisher drops all events. Used when Kafka is disabled.
type NoopPublisher struct{}

// NewNoopPublisher returns a publisher that discards events
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (*NoopPublisher) PublishUpsert(ctx context.Context, tenantID, entityType, entityID, slug, title string) {
}
func (*NoopPublisher) PublishDelete(ctx context.Context, tenantID, entityType, entityID string) {}
func (*NoopPublisher) Close()                                                                  {}
