// Package service implements the wishlist business rules: access control,
// foreign reference validation and partial updates.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MiSArch/wishlist/internal/auth"
	"github.com/MiSArch/wishlist/internal/domain"
	"github.com/MiSArch/wishlist/internal/repository"
	apperrors "github.com/MiSArch/wishlist/pkg/errors"
	"github.com/MiSArch/wishlist/pkg/pagination"
)

// WishlistService orchestrates wishlist operations over the repositories.
type WishlistService struct {
	wishlists repository.WishlistRepository
	users     repository.UserProjectionRepository
	variants  repository.ProductVariantProjectionRepository
	logger    *slog.Logger
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(
	wishlists repository.WishlistRepository,
	users repository.UserProjectionRepository,
	variants repository.ProductVariantProjectionRepository,
	logger *slog.Logger,
) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		users:     users,
		variants:  variants,
		logger:    logger,
	}
}

// CreateWishlistInput carries the fields of a new wishlist. IDs must already
// be in canonical UUID form.
type CreateWishlistInput struct {
	UserID            string
	ProductVariantIDs []string
	Name              string
}

// UpdateWishlistInput carries a partial update. Nil fields are left as they
// are; a non-nil empty ProductVariantIDs clears the set.
type UpdateWishlistInput struct {
	Name              *string
	ProductVariantIDs []string
}

// Get returns a single wishlist. Existence is checked before access so a
// caller probing foreign IDs learns nothing beyond "not found".
func (s *WishlistService) Get(ctx context.Context, caller *auth.Identity, id string) (*domain.Wishlist, error) {
	w, err := s.wishlists.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if err := auth.Authorize(caller, &w.UserID); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns one page of all wishlists. The total count is computed by its
// own query and is independent of the page window.
func (s *WishlistService) List(ctx context.Context, order domain.WishlistOrder, page pagination.Request) (*pagination.Connection[domain.Wishlist], error) {
	total, err := s.wishlists.Count(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	nodes, hasNextPage, err := s.wishlists.List(ctx, order, page)
	if err != nil {
		return nil, storageErr(err)
	}
	conn := pagination.NewConnection(nodes, hasNextPage, total)
	return &conn, nil
}

// Create validates the referenced user and product variants against the local
// projections and inserts the wishlist. Authorization happens first so an
// unauthorized caller triggers no validation queries.
func (s *WishlistService) Create(ctx context.Context, caller *auth.Identity, input CreateWishlistInput) (*domain.Wishlist, error) {
	if err := auth.Authorize(caller, &input.UserID); err != nil {
		return nil, err
	}

	variantIDs := domain.NormalizeVariantIDs(input.ProductVariantIDs)
	if err := s.validateVariants(ctx, variantIDs); err != nil {
		return nil, err
	}
	if err := s.validateUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	w := &domain.Wishlist{
		ID:                uuid.New().String(),
		UserID:            input.UserID,
		ProductVariantIDs: variantIDs,
		Name:              input.Name,
		CreatedAt:         now,
		LastUpdatedAt:     now,
	}
	if err := s.wishlists.Create(ctx, w); err != nil {
		return nil, storageErr(err)
	}

	s.logger.InfoContext(ctx, "wishlist created",
		slog.String("wishlist_id", w.ID),
		slog.String("user_id", w.UserID),
		slog.Int("product_variant_count", len(variantIDs)),
	)

	return s.reload(ctx, w.ID)
}

// Update applies a partial update. Only the supplied fields are validated and
// written; an update that carries no fields changes nothing, including the
// last-updated timestamp.
func (s *WishlistService) Update(ctx context.Context, caller *auth.Identity, id string, input UpdateWishlistInput) (*domain.Wishlist, error) {
	w, err := s.wishlists.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if err := auth.Authorize(caller, &w.UserID); err != nil {
		return nil, err
	}

	patch := domain.WishlistPatch{Name: input.Name}
	if input.ProductVariantIDs != nil {
		variantIDs := domain.NormalizeVariantIDs(input.ProductVariantIDs)
		if err := s.validateVariants(ctx, variantIDs); err != nil {
			return nil, err
		}
		patch.ProductVariantIDs = variantIDs
	}

	if patch.IsEmpty() {
		return w, nil
	}

	if err := s.wishlists.Update(ctx, id, patch, time.Now().UTC()); err != nil {
		return nil, storageErr(err)
	}

	s.logger.InfoContext(ctx, "wishlist updated", slog.String("wishlist_id", id))

	return s.reload(ctx, id)
}

// Delete removes a wishlist and reports whether it was deleted.
func (s *WishlistService) Delete(ctx context.Context, caller *auth.Identity, id string) (bool, error) {
	w, err := s.wishlists.GetByID(ctx, id)
	if err != nil {
		return false, storageErr(err)
	}
	if err := auth.Authorize(caller, &w.UserID); err != nil {
		return false, err
	}
	if err := s.wishlists.Delete(ctx, id); err != nil {
		return false, storageErr(err)
	}

	s.logger.InfoContext(ctx, "wishlist deleted",
		slog.String("wishlist_id", id),
		slog.String("user_id", w.UserID),
	)
	return true, nil
}

// ResolveUser answers whether a user is known to the local projection,
// returning its entity representation.
func (s *WishlistService) ResolveUser(ctx context.Context, id string) (*domain.User, error) {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if !exists {
		return nil, apperrors.NotFound("user", id)
	}
	return &domain.User{ID: id}, nil
}

func (s *WishlistService) validateUser(ctx context.Context, id string) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return apperrors.Unavailable(err)
	}
	if !exists {
		return apperrors.ReferenceNotFound("user", id)
	}
	return nil
}

func (s *WishlistService) validateVariants(ctx context.Context, ids []string) error {
	missing, err := s.variants.Missing(ctx, ids)
	if err != nil {
		return apperrors.Unavailable(err)
	}
	if len(missing) > 0 {
		return apperrors.ReferenceNotFound("product variant", missing[0])
	}
	return nil
}

func (s *WishlistService) reload(ctx context.Context, id string) (*domain.Wishlist, error) {
	w, err := s.wishlists.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return w, nil
}

// storageErr keeps domain errors intact and maps everything else, i.e. driver
// and connectivity failures, to an unavailability error.
func storageErr(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Unavailable(err)
}
