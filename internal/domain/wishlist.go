package domain

import (
	"sort"
	"time"
)

// Wishlist is a named collection of product variant references owned by a user.
// IDs are stored in canonical UUID string form.
type Wishlist struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	ProductVariantIDs []string  `json:"product_variant_ids"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
	LastUpdatedAt     time.Time `json:"last_updated_at"`
}

// WishlistPatch describes a partial update. A nil field is left untouched;
// a non-nil ProductVariantIDs replaces the whole set, even when empty.
type WishlistPatch struct {
	Name              *string
	ProductVariantIDs []string
}

// IsEmpty reports whether the patch changes nothing.
func (p WishlistPatch) IsEmpty() bool {
	return p.Name == nil && p.ProductVariantIDs == nil
}

// User is the local read-model projection of a user aggregate owned by
// another service. Only the identity is mirrored.
type User struct {
	ID string `json:"id"`
}

// ProductVariant is the local read-model projection of a product variant
// aggregate owned by another service.
type ProductVariant struct {
	ID string `json:"id"`
}

// NormalizeVariantIDs deduplicates and sorts a set of variant IDs. The result
// is never nil so an empty set round-trips as an empty array.
func NormalizeVariantIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
