// Package postgres implements the repository contracts on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MiSArch/wishlist/internal/domain"
	"github.com/MiSArch/wishlist/pkg/database"
	apperrors "github.com/MiSArch/wishlist/pkg/errors"
	"github.com/MiSArch/wishlist/pkg/pagination"
)

const wishlistColumns = "id, user_id, product_variant_ids, name, created_at, last_updated_at"

// WishlistRepository is the PostgreSQL-backed wishlist store.
type WishlistRepository struct {
	pool database.DBTX
}

// NewWishlistRepository creates a new WishlistRepository.
func NewWishlistRepository(pool database.DBTX) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// GetByID fetches a single wishlist by its ID.
func (r *WishlistRepository) GetByID(ctx context.Context, id string) (*domain.Wishlist, error) {
	query := fmt.Sprintf("SELECT %s FROM wishlists WHERE id = $1", wishlistColumns)

	var w domain.Wishlist
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.ProductVariantIDs, &w.Name, &w.CreatedAt, &w.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("wishlist", id)
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	if w.ProductVariantIDs == nil {
		w.ProductVariantIDs = []string{}
	}
	return &w, nil
}

// List returns one page of wishlists. It fetches one row beyond the window to
// determine whether a next page exists without a second query.
func (r *WishlistRepository) List(ctx context.Context, order domain.WishlistOrder, page pagination.Request) ([]domain.Wishlist, bool, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM wishlists ORDER BY %s LIMIT $1 OFFSET $2",
		wishlistColumns, orderClause(order),
	)

	rows, err := r.pool.Query(ctx, query, page.Limit+1, page.Skip)
	if err != nil {
		return nil, false, fmt.Errorf("list wishlists: %w", err)
	}
	defer rows.Close()

	wishlists := make([]domain.Wishlist, 0, page.Limit)
	for rows.Next() {
		var w domain.Wishlist
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProductVariantIDs, &w.Name, &w.CreatedAt, &w.LastUpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan wishlist: %w", err)
		}
		if w.ProductVariantIDs == nil {
			w.ProductVariantIDs = []string{}
		}
		wishlists = append(wishlists, w)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("list wishlists: %w", err)
	}

	hasNextPage := len(wishlists) > page.Limit
	if hasNextPage {
		wishlists = wishlists[:page.Limit]
	}
	return wishlists, hasNextPage, nil
}

// Count returns the total number of wishlists.
func (r *WishlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM wishlists").Scan(&count); err != nil {
		return 0, fmt.Errorf("count wishlists: %w", err)
	}
	return count, nil
}

// Create inserts a new wishlist.
func (r *WishlistRepository) Create(ctx context.Context, wishlist *domain.Wishlist) error {
	query := fmt.Sprintf("INSERT INTO wishlists (%s) VALUES ($1, $2, $3, $4, $5, $6)", wishlistColumns)

	_, err := r.pool.Exec(ctx, query,
		wishlist.ID, wishlist.UserID, wishlist.ProductVariantIDs,
		wishlist.Name, wishlist.CreatedAt, wishlist.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create wishlist: %w", err)
	}
	return nil
}

// Update applies the set patch fields in a single statement. Fields the patch
// does not carry keep their stored value. last_updated_at is stamped exactly
// once per effective update.
func (r *WishlistRepository) Update(ctx context.Context, id string, patch domain.WishlistPatch, updatedAt time.Time) error {
	if patch.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	arg := 1

	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", arg))
		args = append(args, *patch.Name)
		arg++
	}
	if patch.ProductVariantIDs != nil {
		sets = append(sets, fmt.Sprintf("product_variant_ids = $%d", arg))
		args = append(args, patch.ProductVariantIDs)
		arg++
	}
	sets = append(sets, fmt.Sprintf("last_updated_at = $%d", arg))
	args = append(args, updatedAt)
	arg++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE wishlists SET %s WHERE id = $%d", strings.Join(sets, ", "), arg)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update wishlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("wishlist", id)
	}
	return nil
}

// Delete removes a wishlist.
func (r *WishlistRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM wishlists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("wishlist", id)
	}
	return nil
}

// orderClause maps a validated order onto SQL. A secondary sort on id keeps
// pages stable when the primary field has duplicates.
func orderClause(order domain.WishlistOrder) string {
	column := "created_at"
	switch order.Field {
	case domain.OrderFieldID:
		column = "id"
	case domain.OrderFieldName:
		column = "name"
	case domain.OrderFieldCreatedAt:
		column = "created_at"
	case domain.OrderFieldLastUpdatedAt:
		column = "last_updated_at"
	}
	direction := "ASC"
	if order.Direction == domain.OrderDesc {
		direction = "DESC"
	}
	if column == "id" {
		return fmt.Sprintf("id %s", direction)
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}
