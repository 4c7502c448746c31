package rest

import (
	"errors"
	"net/http"

	"lokamart-be/internal/cart"
	"lokamart-be/internal/identity"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/transport"

	"go.uber.org/zap"
)

// CartHandler serves the cart endpoints. The CartOwner middleware runs in
// front of both routes, so the owner is always present in the context.
type CartHandler struct {
	service cart.Service
}

func NewCartHandler(service cart.Service) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type addToCartResponse struct {
	transport.Envelope
	CartID uint `json:"cartId,omitempty"`
}

type cartResponse struct {
	transport.Envelope
	CartData *cart.View `json:"cartData"`
}

// GetCarts returns the owner's active cart. An owner without a cart gets
// an empty view with a 200, never an error.
func (h *CartHandler) GetCarts(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.OwnerFrom(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	view, err := h.service.GetCartDetails(r.Context(), owner)
	if err != nil {
		logger.FromCtx(r.Context()).Error("get cart details failed", zap.Error(err))
		transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	message := "Cart data fetched successfully"
	if owner.Type == identity.OwnerGuest {
		message = "Guest cart data fetched successfully"
	}
	if len(view.CartItems) == 0 {
		message = "Cart is empty"
	}

	transport.WriteJSON(w, http.StatusOK, cartResponse{
		Envelope: transport.Envelope{Success: true, Message: message},
		CartData: view,
	})
}

// AddToCart validates the payload and delegates to the cart service.
// Insufficient stock is a domain outcome reported with a 200, while
// malformed input is a 400 and never reaches storage.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := identity.OwnerFrom(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var req addToCartRequest
	if err := transport.DecodeJSON(w, r, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == 0 {
		transport.WriteError(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	if req.Quantity < 1 {
		transport.WriteError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	result, err := h.service.AddToCart(r.Context(), cart.AddToCartParams{
		Owner:     owner,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInsufficientStock):
			transport.WriteJSON(w, http.StatusOK, transport.Envelope{Success: false, Message: "Not enough stock available"})
		case errors.Is(err, cart.ErrProductNotFound):
			transport.WriteJSON(w, http.StatusOK, transport.Envelope{Success: false, Message: "Product not found"})
		case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidProduct):
			transport.WriteError(w, http.StatusBadRequest, "Invalid request body")
		default:
			logger.FromCtx(r.Context()).Error("add to cart failed", zap.Error(err))
			transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	transport.WriteJSON(w, http.StatusOK, addToCartResponse{
		Envelope: transport.Envelope{Success: true, Message: "Item added to cart successfully"},
		CartID:   result.CartID,
	})
}
