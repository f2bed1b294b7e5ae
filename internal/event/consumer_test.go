package event

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MiSArch/wishlist/pkg/kafka"
)

type mockUserProjectionRepo struct {
	mock.Mock
}

func (m *mockUserProjectionRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserProjectionRepo) Upsert(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserProjectionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVariantProjectionRepo struct {
	mock.Mock
}

func (m *mockVariantProjectionRepo) Missing(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockVariantProjectionRepo) Upsert(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockVariantProjectionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestConsumer(t *testing.T) (*Consumer, *mockUserProjectionRepo, *mockVariantProjectionRepo) {
	t.Helper()
	users := new(mockUserProjectionRepo)
	variants := new(mockVariantProjectionRepo)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewConsumer(users, variants, logger), users, variants
}

func newTestEvent(t *testing.T, eventType, aggregateType string, data any) *kafka.Event {
	t.Helper()
	event, err := kafka.NewEvent(eventType, "agg-1", aggregateType, "test", data)
	require.NoError(t, err)
	return event
}

func TestConsumerHandle(t *testing.T) {
	userID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	variantID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("user created upserts the projection", func(t *testing.T) {
		consumer, users, _ := newTestConsumer(t)
		users.On("Upsert", mock.Anything, userID).Return(nil)

		event := newTestEvent(t, TopicUserCreated, "user", UserEventData{ID: userID})
		require.NoError(t, consumer.Handle(context.Background(), event))
		users.AssertExpectations(t)
	})

	t.Run("user deleted removes the projection", func(t *testing.T) {
		consumer, users, _ := newTestConsumer(t)
		users.On("Delete", mock.Anything, userID).Return(nil)

		event := newTestEvent(t, TopicUserDeleted, "user", UserEventData{ID: userID})
		require.NoError(t, consumer.Handle(context.Background(), event))
		users.AssertExpectations(t)
	})

	t.Run("product variant created upserts the projection", func(t *testing.T) {
		consumer, _, variants := newTestConsumer(t)
		variants.On("Upsert", mock.Anything, variantID).Return(nil)

		event := newTestEvent(t, TopicProductVariantCreated, "product-variant", ProductVariantEventData{ID: variantID})
		require.NoError(t, consumer.Handle(context.Background(), event))
		variants.AssertExpectations(t)
	})

	t.Run("product variant deleted removes the projection", func(t *testing.T) {
		consumer, _, variants := newTestConsumer(t)
		variants.On("Delete", mock.Anything, variantID).Return(nil)

		event := newTestEvent(t, TopicProductVariantDeleted, "product-variant", ProductVariantEventData{ID: variantID})
		require.NoError(t, consumer.Handle(context.Background(), event))
		variants.AssertExpectations(t)
	})

	t.Run("id is normalized to canonical form", func(t *testing.T) {
		consumer, users, _ := newTestConsumer(t)
		users.On("Upsert", mock.Anything, userID).Return(nil)

		event := newTestEvent(t, TopicUserCreated, "user", UserEventData{ID: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"})
		require.NoError(t, consumer.Handle(context.Background(), event))
		users.AssertExpectations(t)
	})

	t.Run("invalid id is an error", func(t *testing.T) {
		consumer, users, _ := newTestConsumer(t)

		event := newTestEvent(t, TopicUserCreated, "user", UserEventData{ID: "not-a-uuid"})
		assert.Error(t, consumer.Handle(context.Background(), event))
		users.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("unknown event type is skipped without error", func(t *testing.T) {
		consumer, users, variants := newTestConsumer(t)

		event := newTestEvent(t, "misarch.order.created", "order", map[string]string{"id": userID})
		assert.NoError(t, consumer.Handle(context.Background(), event))
		users.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		variants.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
