package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelreview/internal/service"
)

// StatsHandler exposes the read-only reporting projections.
type StatsHandler struct {
	statsSvc *service.StatsService
}

func NewStatsHandler(ss *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: ss}
}

// PlaceStats handles GET /api/stats/places.
func (h *StatsHandler) PlaceStats(c *gin.Context) {
	rows, err := h.statsSvc.PlaceStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DestinationRating handles GET /api/destinations/:id/rating.
func (h *StatsHandler) DestinationRating(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid destination id"})
		return
	}
	avg, err := h.statsSvc.AvgRatingByDestination(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination_id": id, "avg_rating": avg})
}
