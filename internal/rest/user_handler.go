package rest

import (
	"net/http"

	"lokamart-be/internal/logger"
	"lokamart-be/internal/transport"
	"lokamart-be/internal/user"
	"lokamart-be/internal/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

type userResponse struct {
	transport.Envelope
	User *user.User `json:"user"`
}

// Me returns the authenticated user's profile. RequireUser runs in front,
// so a missing context user means the middleware chain is miswired.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	details, err := h.service.DetailsByID(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("fetch user details failed", zap.Error(err))
		transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if details == nil {
		transport.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transport.WriteJSON(w, http.StatusOK, userResponse{
		Envelope: transport.Envelope{Success: true, Message: "User details fetched successfully"},
		User:     details,
	})
}
