package rest

import (
	"net/http"

	"lokamart-be/internal/dashboard"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/transport"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	transport.Envelope
	Data *dashboard.Data `json:"data"`
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetDashboardData(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("fetch dashboard failed", zap.Error(err))
		transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	transport.WriteJSON(w, http.StatusOK, dashboardResponse{
		Envelope: transport.Envelope{Success: true, Message: "Dashboard Data Fetched"},
		Data:     data,
	})
}
