// Package http exposes the wishlist service over REST.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MiSArch/wishlist/internal/auth"
	"github.com/MiSArch/wishlist/internal/domain"
	"github.com/MiSArch/wishlist/internal/service"
	apperrors "github.com/MiSArch/wishlist/pkg/errors"
	"github.com/MiSArch/wishlist/pkg/httputil"
	"github.com/MiSArch/wishlist/pkg/pagination"
	"github.com/MiSArch/wishlist/pkg/validator"
)

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: service, logger: logger}
}

// CreateWishlistRequest is the POST body for a new wishlist.
type CreateWishlistRequest struct {
	UserID            string   `json:"user_id" validate:"required"`
	ProductVariantIDs []string `json:"product_variant_ids"`
	Name              string   `json:"name" validate:"required,min=1,max=255"`
}

// UpdateWishlistRequest is the PATCH body. Absent fields stay untouched; an
// explicit empty product_variant_ids array clears the set.
type UpdateWishlistRequest struct {
	Name              *string  `json:"name" validate:"omitempty,min=1,max=255"`
	ProductVariantIDs []string `json:"product_variant_ids"`
}

// WishlistConnection is the response envelope for a page of wishlists.
type WishlistConnection struct {
	Nodes       []domain.Wishlist `json:"nodes"`
	HasNextPage bool              `json:"has_next_page"`
	TotalCount  int64             `json:"total_count"`
}

// List handles GET /api/v1/wishlists.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	order, err := orderFromQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	page := pagination.FromHTTP(r)

	conn, err := h.service.List(r.Context(), order, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: WishlistConnection{
		Nodes:       conn.Nodes,
		HasNextPage: conn.HasNextPage,
		TotalCount:  conn.TotalCount,
	}})
}

// Get handles GET /api/v1/wishlists/{id}.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	wishlist, err := h.service.Get(r.Context(), auth.IdentityFromRequest(r), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// Create handles POST /api/v1/wishlists.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID, err := canonicalID(req.UserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	variantIDs, err := canonicalIDs(req.ProductVariantIDs)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	wishlist, err := h.service.Create(r.Context(), auth.IdentityFromRequest(r), service.CreateWishlistInput{
		UserID:            userID,
		ProductVariantIDs: variantIDs,
		Name:              req.Name,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: wishlist})
}

// Update handles PATCH /api/v1/wishlists/{id}.
func (h *WishlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.UpdateWishlistInput{Name: req.Name}
	if req.ProductVariantIDs != nil {
		variantIDs, err := canonicalIDs(req.ProductVariantIDs)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		input.ProductVariantIDs = variantIDs
	}

	wishlist, err := h.service.Update(r.Context(), auth.IdentityFromRequest(r), id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// Delete handles DELETE /api/v1/wishlists/{id}.
func (h *WishlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), auth.IdentityFromRequest(r), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"deleted": deleted}})
}

// ResolveUser handles GET /api/v1/users/{id}. It answers whether the user is
// known to the local projection and needs no caller identity.
func (h *WishlistHandler) ResolveUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	user, err := h.service.ResolveUser(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

func orderFromQuery(r *http.Request) (domain.WishlistOrder, error) {
	order := domain.DefaultWishlistOrder()

	if v := r.URL.Query().Get("order_field"); v != "" {
		field, err := domain.ParseOrderField(v)
		if err != nil {
			return order, apperrors.InvalidInput(err.Error())
		}
		order.Field = field
	}
	if v := r.URL.Query().Get("order_direction"); v != "" {
		direction, err := domain.ParseOrderDirection(v)
		if err != nil {
			return order, apperrors.InvalidInput(err.Error())
		}
		order.Direction = direction
	}
	return order, nil
}

// canonicalID parses an ID from a request body and normalizes it to the
// canonical UUID string form under which all IDs are stored.
func canonicalID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.InvalidInput("invalid UUID: " + raw)
	}
	return id.String(), nil
}

func canonicalIDs(raw []string) ([]string, error) {
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		id, err := canonicalID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
