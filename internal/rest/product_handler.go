package rest

import (
	"net/http"

	"lokamart-be/internal/logger"
	"lokamart-be/internal/product"
	"lokamart-be/internal/transport"

	"go.uber.org/zap"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

type productsResponse struct {
	transport.Envelope
	Products []product.Product `json:"products"`
}

// GetProducts lists the active catalog. An empty catalog is a normal
// response, not an error.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetProducts(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	transport.WriteJSON(w, http.StatusOK, productsResponse{
		Envelope: transport.Envelope{Success: true, Message: "Products details fetched successfully"},
		Products: products,
	})
}
