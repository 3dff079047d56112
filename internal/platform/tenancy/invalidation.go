package tenancy

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// InvalidationChannel is the Redis pub/sub channel carrying tenant
// directory changes between nodes.
const InvalidationChannel = "chambers.tenant.changed"

// TenantChange is broadcast when a tenant's directory record changes.
// Hosts lists the serving hosts touched by the change (old and new
// custom domains) so every node drops the right cache entries even
// when a domain moved between tenants.
type TenantChange struct {
	TenantID string   `json:"tenant_id"`
	Hosts    []string `json:"hosts,omitempty"`
}

// InvalidationBus fans tenant directory changes out to every node over
// Redis pub/sub; each node applies received changes to its own
// registry cache. The bus is optional: with a nil client Publish is a
// no-op and Start does nothing, so single-node deployments run without
// Redis.
type InvalidationBus struct {
	Client   *redis.Client
	Registry *Registry
	Logger   *slog.Logger

	pubsub *redis.PubSub
	doneCh chan struct{}
}

// NewInvalidationBus creates a bus over client. A nil client yields a
// bus whose operations all no-op.
func NewInvalidationBus(client *redis.Client, registry *Registry, logger *slog.Logger) *InvalidationBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvalidationBus{
		Client:   client,
		Registry: registry,
		Logger:   logger,
	}
}

// Publish broadcasts a tenant change to all nodes, including this one.
func (b *InvalidationBus) Publish(ctx context.Context, change TenantChange) error {
	if b == nil || b.Client == nil {
		return nil
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return b.Client.Publish(ctx, InvalidationChannel, payload).Err()
}

// Start subscribes to the invalidation channel and begins applying
// received changes. The subscription is confirmed on the wire before
// Start returns.
func (b *InvalidationBus) Start(ctx context.Context) error {
	if b == nil || b.Client == nil {
		return nil
	}

	b.pubsub = b.Client.Subscribe(ctx, InvalidationChannel)
	if _, err := b.pubsub.Receive(ctx); err != nil {
		b.pubsub.Close()
		b.pubsub = nil
		return err
	}

	b.doneCh = make(chan struct{})
	go b.run()
	b.Logger.Info("tenant invalidation bus started", "channel", InvalidationChannel)
	return nil
}

// Stop closes the subscription and waits for the worker to drain.
func (b *InvalidationBus) Stop() {
	if b == nil || b.pubsub == nil {
		return
	}
	b.pubsub.Close()
	<-b.doneCh
	b.pubsub = nil
	b.Logger.Info("tenant invalidation bus stopped")
}

func (b *InvalidationBus) run() {
	defer close(b.doneCh)
	for msg := range b.pubsub.Channel() {
		b.apply([]byte(msg.Payload))
	}
}

func (b *InvalidationBus) apply(payload []byte) {
	var change TenantChange
	if err := json.Unmarshal(payload, &change); err != nil {
		b.Logger.Warn("dropping malformed tenant change", "error", err)
		return
	}
	b.Registry.Invalidate(change.TenantID, change.Hosts...)
	b.Logger.Debug("tenant cache invalidated",
		"tenant_id", change.TenantID,
		"hosts", len(change.Hosts),
	)
}
