// Package auth parses the gateway-injected caller identity and enforces
// ownership-based access control on wishlist resources.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// HeaderName is the request header the gateway populates with the
// authenticated caller, encoded as JSON.
const HeaderName = "Authorized-User"

// Role is a user role as assigned by the user service.
type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// IsPermissive reports whether the role grants access to resources
// regardless of ownership.
func (r Role) IsPermissive() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string `json:"id"`
	Roles  []Role `json:"roles"`
}

// HasPermissiveRole reports whether any of the caller's roles is permissive.
func (i *Identity) HasPermissiveRole() bool {
	for _, r := range i.Roles {
		if r.IsPermissive() {
			return true
		}
	}
	return false
}

// IdentityFromRequest extracts the caller identity from the Authorized-User
// header. It returns nil when the header is absent or cannot be parsed, in
// which case the request is treated as anonymous.
func IdentityFromRequest(r *http.Request) *Identity {
	return ParseIdentity(r.Header.Get(HeaderName))
}

// ParseIdentity parses the raw header value. Any malformed part, including an
// unknown role name, yields nil rather than a partially trusted identity.
func ParseIdentity(raw string) *Identity {
	if raw == "" {
		return nil
	}
	var header struct {
		ID    string   `json:"id"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal([]byte(raw), &header); err != nil {
		return nil
	}
	id, err := uuid.Parse(header.ID)
	if err != nil {
		return nil
	}
	roles := make([]Role, 0, len(header.Roles))
	for _, name := range header.Roles {
		role := Role(name)
		if !role.Valid() {
			return nil
		}
		roles = append(roles, role)
	}
	return &Identity{UserID: id.String(), Roles: roles}
}
