package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/MiSArch/wishlist/pkg/errors"
)

func TestAuthorize(t *testing.T) {
	ownerID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	otherID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("anonymous caller is unauthenticated", func(t *testing.T) {
		err := Authorize(nil, &ownerID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
	})

	t.Run("owner may access their own resource", func(t *testing.T) {
		caller := &Identity{UserID: ownerID, Roles: []Role{RoleBuyer}}
		assert.NoError(t, Authorize(caller, &ownerID))
	})

	t.Run("owner with no roles may still access their resource", func(t *testing.T) {
		caller := &Identity{UserID: ownerID}
		assert.NoError(t, Authorize(caller, &ownerID))
	})

	t.Run("non-owner buyer is forbidden", func(t *testing.T) {
		caller := &Identity{UserID: otherID, Roles: []Role{RoleBuyer}}
		err := Authorize(caller, &ownerID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
		assert.Contains(t, err.Error(), ownerID)
	})

	t.Run("admin may access any resource", func(t *testing.T) {
		caller := &Identity{UserID: otherID, Roles: []Role{RoleAdmin}}
		assert.NoError(t, Authorize(caller, &ownerID))
	})

	t.Run("employee may access any resource", func(t *testing.T) {
		caller := &Identity{UserID: otherID, Roles: []Role{RoleEmployee}}
		assert.NoError(t, Authorize(caller, &ownerID))
	})

	t.Run("permissive role passes without an owner", func(t *testing.T) {
		caller := &Identity{UserID: otherID, Roles: []Role{RoleBuyer, RoleAdmin}}
		assert.NoError(t, Authorize(caller, nil))
	})

	t.Run("non-permissive caller is forbidden without an owner", func(t *testing.T) {
		caller := &Identity{UserID: otherID, Roles: []Role{RoleBuyer}}
		err := Authorize(caller, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	})
}
