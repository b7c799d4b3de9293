package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelreview/internal/service"
)

// PlaceRequestDTO is the JSON payload for creating a place.
type PlaceRequestDTO struct {
	DestinationID int64  `json:"destination_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required,oneof=hotel restaurant attraction"`
	Description   string `json:"description"`
}

// DestinationRequestDTO is the JSON payload for creating a destination.
type DestinationRequestDTO struct {
	Name        string `json:"name" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Region      string `json:"region"`
	Description string `json:"description"`
}

// PlaceHandler ties HTTP requests to the PlaceService.
type PlaceHandler struct {
	placeSvc *service.PlaceService
}

func NewPlaceHandler(ps *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeSvc: ps}
}

// CreatePlace handles POST /api/places.
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req PlaceRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.placeSvc.CreatePlace(c.Request.Context(), req.DestinationID, req.Name, req.Category, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPlace handles GET /api/places/:id — the place plus its photo metadata.
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	p, photos, err := h.placeSvc.GetPlace(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"place": p, "photos": photos})
}

// SearchPlaces handles GET /api/places with optional category, destination,
// min_rating and q filters.
func (h *PlaceHandler) SearchPlaces(c *gin.Context) {
	var destinationID int64
	if v := c.Query("destination"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid destination id"})
			return
		}
		destinationID = id
	}
	var minRating float64
	if v := c.Query("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rating"})
			return
		}
		minRating = r
	}
	places, err := h.placeSvc.SearchPlaces(c.Request.Context(), c.Query("category"), destinationID, minRating, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// CreateDestination handles POST /api/destinations (admin only).
func (h *PlaceHandler) CreateDestination(c *gin.Context) {
	var req DestinationRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := h.placeSvc.CreateDestination(c.Request.Context(), req.Name, req.Country, req.Region, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ListDestinations handles GET /api/destinations.
func (h *PlaceHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.placeSvc.ListDestinations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, destinations)
}
