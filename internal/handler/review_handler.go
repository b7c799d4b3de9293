package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"travelreview/internal/middleware"
	"travelreview/internal/model"
	"travelreview/internal/service"
)

// ReviewRequestDTO is the JSON payload for creating or replacing a review.
type ReviewRequestDTO struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Body   string `json:"body"`
}

// ReviewResponseDTO is what we return for each review.
type ReviewResponseDTO struct {
	ID        int64  `json:"id"`
	PlaceID   int64  `json:"place_id"`
	UserID    int64  `json:"user_id"`
	Rating    int    `json:"rating"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// ReviewHandler ties HTTP requests to the ReviewService.
type ReviewHandler struct {
	reviewSvc *service.ReviewService
}

func NewReviewHandler(rs *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: rs}
}

// GetReviews handles GET /api/places/:id/reviews.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	placeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	reviews, err := h.reviewSvc.ReviewsForPlace(c.Request.Context(), placeID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]ReviewResponseDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewDTO(&r))
	}
	c.JSON(http.StatusOK, out)
}

// CreateReview handles POST /api/places/:id/reviews. The author is the
// authenticated user.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	placeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req ReviewRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rev, err := h.reviewSvc.SubmitReview(c.Request.Context(), placeID, userID, req.Rating, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewDTO(rev))
}

// UpdateReview handles PUT /api/reviews/:id. The edit is applied as
// delete+insert, so the returned review carries a new ID.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	var req struct {
		PlaceID int64  `json:"place_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Body    string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rev, err := h.reviewSvc.UpdateReview(c.Request.Context(), reviewID, req.PlaceID, req.Rating, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewDTO(rev))
}

// DeleteReview handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	if err := h.reviewSvc.DeleteReview(c.Request.Context(), reviewID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHistory handles GET /api/places/:id/history — the audit trail of the
// place's reviews.
func (h *ReviewHandler) GetHistory(c *gin.Context) {
	placeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}
	trail, err := h.reviewSvc.HistoryForPlace(c.Request.Context(), placeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trail)
}

func toReviewDTO(r *model.Review) ReviewResponseDTO {
	return ReviewResponseDTO{
		ID:        r.ID,
		PlaceID:   r.PlaceID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Body:      r.Body,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
