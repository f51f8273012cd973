package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/nuvoshop/wishlist-service/pkg/errors"
	"github.com/nuvoshop/wishlist-service/pkg/httputil"
	"github.com/nuvoshop/wishlist-service/pkg/validator"

	"github.com/nuvoshop/wishlist-service/internal/domain"
	"github.com/nuvoshop/wishlist-service/internal/service"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the wishlist.
// Name, price and currency only matter for guest sessions, where the service
// keeps a product snapshot of its own.
type AddItemRequest struct {
	ProductID string   `json:"product_id" validate:"required"`
	Name      string   `json:"name" validate:"max=500"`
	Price     int64    `json:"price" validate:"gte=0"`
	Currency  string   `json:"currency" validate:"omitempty,len=3"`
	Images    []string `json:"images"`
}

// --- Response DTOs ---

// StateResponse is the wishlist state returned by read endpoints.
type StateResponse struct {
	Items     []domain.WishlistItem `json:"items"`
	Status    string                `json:"status"`
	LastError string                `json:"last_error,omitempty"`
}

// SyncResponse is returned by the sync endpoint.
type SyncResponse struct {
	Report   domain.SyncReport `json:"report"`
	Wishlist StateResponse     `json:"wishlist"`
}

// ContainsResponse reports wishlist membership for a single product.
type ContainsResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

func stateResponse(state domain.State) StateResponse {
	return StateResponse{
		Items:     state.Items,
		Status:    string(state.Status),
		LastError: state.LastError,
	}
}

// --- Handlers ---

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("session is required"), h.logger)
		return
	}

	state, err := h.service.Fetch(r.Context(), session)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stateResponse(state)})
}

// AddItem handles POST /api/v1/wishlist
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("session is required"), h.logger)
		return
	}

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item, err := h.service.Add(r.Context(), session, service.AddItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Currency:  req.Currency,
		Images:    req.Images,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}

// RemoveItem handles DELETE /api/v1/wishlist/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("session is required"), h.logger)
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId is required"), h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), session, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("session is required"), h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), session); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

// ContainsItem handles GET /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) ContainsItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("session is required"), h.logger)
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("productId is required"), h.logger)
		return
	}

	contained, err := h.service.Contains(r.Context(), session, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ContainsResponse{
		ProductID:  productID,
		InWishlist: contained,
	}})
}

// SyncWishlist handles POST /api/v1/wishlist/sync
func (h *WishlistHandler) SyncWishlist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("session is required"), h.logger)
		return
	}

	report, state, err := h.service.SyncLocalToRemote(r.Context(), session)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SyncResponse{
		Report:   report,
		Wishlist: stateResponse(state),
	}})
}
