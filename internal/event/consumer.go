// Package event ingests lifecycle events from the user and catalog services
// and maintains the local read-model projections.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MiSArch/wishlist/internal/repository"
	"github.com/MiSArch/wishlist/pkg/kafka"
)

// Topics consumed for projection maintenance.
const (
	TopicUserCreated           = "misarch.user.created"
	TopicUserDeleted           = "misarch.user.deleted"
	TopicProductVariantCreated = "misarch.product-variant.created"
	TopicProductVariantDeleted = "misarch.product-variant.deleted"
)

// Topics returns all topics the projection consumer subscribes to.
func Topics() []string {
	return []string{
		TopicUserCreated,
		TopicUserDeleted,
		TopicProductVariantCreated,
		TopicProductVariantDeleted,
	}
}

// UserEventData is the payload of user lifecycle events.
type UserEventData struct {
	ID string `json:"id"`
}

// ProductVariantEventData is the payload of product variant lifecycle events.
type ProductVariantEventData struct {
	ID string `json:"id"`
}

// Consumer applies lifecycle events to the projection tables.
type Consumer struct {
	users    repository.UserProjectionRepository
	variants repository.ProductVariantProjectionRepository
	logger   *slog.Logger
}

// NewConsumer creates a new projection Consumer.
func NewConsumer(
	users repository.UserProjectionRepository,
	variants repository.ProductVariantProjectionRepository,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{users: users, variants: variants, logger: logger}
}

// Handle dispatches a single event by type. Events of unknown types are
// logged and skipped so new upstream event kinds never wedge the consumer.
func (c *Consumer) Handle(ctx context.Context, event *kafka.Event) error {
	switch event.EventType {
	case TopicUserCreated:
		return c.handleUser(ctx, event, c.users.Upsert)
	case TopicUserDeleted:
		return c.handleUser(ctx, event, c.users.Delete)
	case TopicProductVariantCreated:
		return c.handleVariant(ctx, event, c.variants.Upsert)
	case TopicProductVariantDeleted:
		return c.handleVariant(ctx, event, c.variants.Delete)
	default:
		c.logger.WarnContext(ctx, "skipping event of unknown type",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *Consumer) handleUser(ctx context.Context, event *kafka.Event, apply func(context.Context, string) error) error {
	var data UserEventData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("decode user event %s: %w", event.EventID, err)
	}
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return fmt.Errorf("user event %s carries invalid id %q: %w", event.EventID, data.ID, err)
	}
	if err := apply(ctx, id.String()); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "user projection updated",
		slog.String("event_type", event.EventType),
		slog.String("user_id", id.String()),
	)
	return nil
}

func (c *Consumer) handleVariant(ctx context.Context, event *kafka.Event, apply func(context.Context, string) error) error {
	var data ProductVariantEventData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("decode product variant event %s: %w", event.EventID, err)
	}
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return fmt.Errorf("product variant event %s carries invalid id %q: %w", event.EventID, data.ID, err)
	}
	if err := apply(ctx, id.String()); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "product variant projection updated",
		slog.String("event_type", event.EventType),
		slog.String("product_variant_id", id.String()),
	)
	return nil
}
