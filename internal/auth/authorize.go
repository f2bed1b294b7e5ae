package auth

import (
	"fmt"

	apperrors "github.com/MiSArch/wishlist/pkg/errors"
)

// Authorize decides whether the caller may act on a resource owned by the
// given user. A nil caller is anonymous and always rejected. Callers with a
// permissive role pass unconditionally; otherwise the caller must own the
// resource.
func Authorize(caller *Identity, ownerID *string) error {
	if caller == nil {
		return apperrors.Unauthenticated("the Authorized-User header is not set or could not be parsed")
	}
	if caller.HasPermissiveRole() {
		return nil
	}
	if ownerID != nil && caller.UserID == *ownerID {
		return nil
	}
	if ownerID != nil {
		return apperrors.Forbidden(fmt.Sprintf("user %s is not permitted to access resources owned by user %s", caller.UserID, *ownerID))
	}
	return apperrors.Forbidden(fmt.Sprintf("user %s is not permitted to access this resource", caller.UserID))
}
