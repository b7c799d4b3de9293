package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelreview/internal/middleware"
	"travelreview/internal/service"
)

// PhotoHandler ties HTTP requests to the PhotoService.
type PhotoHandler struct {
	photoSvc *service.PhotoService
}

func NewPhotoHandler(ps *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoSvc: ps}
}

// Upload handles POST /api/places/:id/photos as multipart form data with a
// "photo" file field and an optional "caption" field.
func (h *PhotoHandler) Upload(c *gin.Context) {
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
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	photo, err := h.photoSvc.Upload(c.Request.Context(), placeID, userID, file, fileHeader.Filename, c.PostForm("caption"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// Download handles GET /api/photos/:id, streaming the bytes back.
func (h *PhotoHandler) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}
	data, meta, err := h.photoSvc.Download(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="photo-`+meta.FileID+`.jpg"`)
	c.Data(http.StatusOK, "image/jpeg", data)
}
