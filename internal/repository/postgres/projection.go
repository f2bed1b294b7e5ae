package postgres

import (
	"context"
	"fmt"

	"github.com/MiSArch/wishlist/pkg/database"
)

// UserProjectionRepository stores the mirrored user IDs consumed from user
// lifecycle events.
type UserProjectionRepository struct {
	pool database.DBTX
}

// NewUserProjectionRepository creates a new UserProjectionRepository.
func NewUserProjectionRepository(pool database.DBTX) *UserProjectionRepository {
	return &UserProjectionRepository{pool: pool}
}

// Exists reports whether the user is known to the projection.
func (r *UserProjectionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM user_projections WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user projection: %w", err)
	}
	return exists, nil
}

// Upsert records a user ID. Replayed events make this a no-op.
func (r *UserProjectionRepository) Upsert(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "INSERT INTO user_projections (id) VALUES ($1) ON CONFLICT (id) DO NOTHING", id)
	if err != nil {
		return fmt.Errorf("upsert user projection: %w", err)
	}
	return nil
}

// Delete removes a user ID. Deleting an unknown ID is not an error.
func (r *UserProjectionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM user_projections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user projection: %w", err)
	}
	return nil
}

// ProductVariantProjectionRepository stores the mirrored product variant IDs
// consumed from catalog events.
type ProductVariantProjectionRepository struct {
	pool database.DBTX
}

// NewProductVariantProjectionRepository creates a new ProductVariantProjectionRepository.
func NewProductVariantProjectionRepository(pool database.DBTX) *ProductVariantProjectionRepository {
	return &ProductVariantProjectionRepository{pool: pool}
}

// Missing returns the subset of ids that have no projection row, preserving
// the input order. The whole set is resolved with a single query.
func (r *ProductVariantProjectionRepository) Missing(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, "SELECT id FROM product_variant_projections WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("check product variant projections: %w", err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product variant projection: %w", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("check product variant projections: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Upsert records a product variant ID. Replayed events make this a no-op.
func (r *ProductVariantProjectionRepository) Upsert(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "INSERT INTO product_variant_projections (id) VALUES ($1) ON CONFLICT (id) DO NOTHING", id)
	if err != nil {
		return fmt.Errorf("upsert product variant projection: %w", err)
	}
	return nil
}

// Delete removes a product variant ID. Deleting an unknown ID is not an error.
func (r *ProductVariantProjectionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM product_variant_projections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product variant projection: %w", err)
	}
	return nil
}
