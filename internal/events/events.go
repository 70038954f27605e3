// Package events publishes cart change notifications to Kafka.
package events

import (
	"context"
	"time"
)

type EventType string

const (
	ItemAdded   EventType = "cart.item_added"
	ItemUpdated EventType = "cart.item_updated"
	ItemRemoved EventType = "cart.item_removed"
)

// CartEvent describes one committed cart mutation. Quantity is the line's
// quantity after the change and is zero for removals.
type CartEvent struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"user_id"`
	ItemID     string    `json:"item_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event CartEvent) error
	Close() error
}

// NopPublisher discards events. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, CartEvent) error { return nil }
func (NopPublisher) Close() error                             { return nil }
