// Package repository defines the persistence contracts of the wishlist
// service.
package repository

import (
	"context"
	"time"

	"github.com/MiSArch/wishlist/internal/domain"
	"github.com/MiSArch/wishlist/pkg/pagination"
)

// WishlistRepository persists wishlist aggregates.
type WishlistRepository interface {
	// GetByID returns the wishlist or a not-found error.
	GetByID(ctx context.Context, id string) (*domain.Wishlist, error)
	// List returns one page of wishlists plus a flag telling whether rows
	// exist beyond it. The window never affects the flag's correctness.
	List(ctx context.Context, order domain.WishlistOrder, page pagination.Request) ([]domain.Wishlist, bool, error)
	// Count returns the total number of wishlists, ignoring any window.
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, wishlist *domain.Wishlist) error
	// Update applies the patch fields that are set and stamps
	// last_updated_at. An empty patch is a no-op.
	Update(ctx context.Context, id string, patch domain.WishlistPatch, updatedAt time.Time) error
	// Delete removes the wishlist or returns a not-found error.
	Delete(ctx context.Context, id string) error
}

// UserProjectionRepository maintains the local mirror of user IDs.
type UserProjectionRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Upsert(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ProductVariantProjectionRepository maintains the local mirror of product
// variant IDs.
type ProductVariantProjectionRepository interface {
	// Missing returns the subset of ids with no projection row, in the
	// order they were supplied.
	Missing(ctx context.Context, ids []string) ([]string, error)
	Upsert(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
