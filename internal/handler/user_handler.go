package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelreview/internal/middleware"
	"travelreview/internal/service"
)

// RegisterRequestDTO is the JSON payload for creating an account.
type RegisterRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// ProfileRequestDTO is the JSON payload for updating the mutable profile
// fields.
type ProfileRequestDTO struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
}

// UserHandler ties HTTP requests to the UserService.
type UserHandler struct {
	userSvc *service.UserService
}

func NewUserHandler(us *service.UserService) *UserHandler {
	return &UserHandler{userSvc: us}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	u, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile handles PUT /api/users/:id. Users may only edit themselves.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	authID, ok := middleware.UserID(c)
	if !ok || authID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot edit another user's profile"})
		return
	}
	var req ProfileRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userSvc.UpdateProfile(c.Request.Context(), id, req.Email, req.FullName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
