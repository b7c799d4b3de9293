package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"travelreview/internal/middleware"
	"travelreview/internal/service"
)

// TripRequestDTO is the JSON payload for creating a trip. Dates are
// YYYY-MM-DD.
type TripRequestDTO struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Notes     string `json:"notes"`
}

// TripPlaceRequestDTO is the JSON payload for adding a place to a trip.
type TripPlaceRequestDTO struct {
	PlaceID   int64  `json:"place_id" binding:"required"`
	DayNumber int    `json:"day_number" binding:"required,min=1"`
	Notes     string `json:"notes"`
}

// TripHandler ties HTTP requests to the TripService.
type TripHandler struct {
	tripSvc *service.TripService
}

func NewTripHandler(ts *service.TripService) *TripHandler {
	return &TripHandler{tripSvc: ts}
}

// CreateTrip handles POST /api/trips for the authenticated user.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req TripRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, want YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, want YYYY-MM-DD"})
		return
	}
	t, err := h.tripSvc.CreateTrip(c.Request.Context(), userID, req.Name, start, end, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// AddPlace handles POST /api/trips/:id/places.
func (h *TripHandler) AddPlace(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	var req TripPlaceRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.tripSvc.AddPlace(c.Request.Context(), tripID, req.PlaceID, req.DayNumber, req.Notes); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RemovePlace handles DELETE /api/trips/:id/places/:placeId.
func (h *TripHandler) RemovePlace(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	placeID, err := strconv.ParseInt(c.Param("placeId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	if err := h.tripSvc.RemovePlace(c.Request.Context(), tripID, placeID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Itinerary handles GET /api/trips/:id/places.
func (h *TripHandler) Itinerary(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	stops, err := h.tripSvc.Itinerary(c.Request.Context(), tripID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stops)
}
