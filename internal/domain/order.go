package domain

import "fmt"

// OrderField selects the wishlist attribute a listing is sorted by.
type OrderField string

const (
	OrderFieldID            OrderField = "id"
	OrderFieldName          OrderField = "name"
	OrderFieldCreatedAt     OrderField = "created_at"
	OrderFieldLastUpdatedAt OrderField = "last_updated_at"
)

// OrderDirection is the sort direction of a listing.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// WishlistOrder combines a sort field with a direction. Listings additionally
// break ties on id so pages are stable across requests.
type WishlistOrder struct {
	Field     OrderField
	Direction OrderDirection
}

// DefaultWishlistOrder sorts by creation time, oldest first.
func DefaultWishlistOrder() WishlistOrder {
	return WishlistOrder{Field: OrderFieldCreatedAt, Direction: OrderAsc}
}

// ParseOrderField validates a client-supplied sort field.
func ParseOrderField(s string) (OrderField, error) {
	switch OrderField(s) {
	case OrderFieldID, OrderFieldName, OrderFieldCreatedAt, OrderFieldLastUpdatedAt:
		return OrderField(s), nil
	default:
		return "", fmt.Errorf("unknown order field %q", s)
	}
}

// ParseOrderDirection validates a client-supplied sort direction.
func ParseOrderDirection(s string) (OrderDirection, error) {
	switch OrderDirection(s) {
	case OrderAsc, OrderDesc:
		return OrderDirection(s), nil
	default:
		return "", fmt.Errorf("unknown order direction %q", s)
	}
}
