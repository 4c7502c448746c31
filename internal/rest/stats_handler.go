package rest

import (
	"net/http"

	"lokamart-be/internal/metrics"
	"lokamart-be/internal/transport"
)

type StatsHandler struct {
	stats *metrics.Stats
}

func NewStatsHandler(stats *metrics.Stats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

type statsResponse struct {
	transport.Envelope
	Stats map[string]uint64 `json:"stats"`
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, statsResponse{
		Envelope: transport.Envelope{Success: true, Message: "Stats fetched successfully"},
		Stats:    h.stats.Snapshot(),
	})
}
