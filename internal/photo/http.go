package photo

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/adilbek/photogallery/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// RegisterPublicRoutes mounts the unauthenticated read surface.
func RegisterPublicRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/photos", handler.listVisible)
	group.GET("/photos/:photoID", handler.getPhoto)
}

// RegisterAdminRoutes mounts the authenticated management surface.
func RegisterAdminRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/photos", handler.listAll)
	group.POST("/photos", handler.uploadPhoto)
	group.PATCH("/photos/:photoID", handler.updatePhoto)
	group.DELETE("/photos/:photoID", handler.deletePhoto)
	group.GET("/photos/orphans", handler.listOrphans)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) listVisible(c *gin.Context) {
	photos, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list photos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

func (h *httpHandler) listAll(c *gin.Context) {
	if _, ok := auth.RequireActor(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	photos, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list photos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

func (h *httpHandler) getPhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), photoID)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch photo"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *httpHandler) uploadPhoto(c *gin.Context) {
	actor, ok := auth.RequireActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	up := Upload{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Content:  file,
		Meta:     metaFromForm(c),
	}

	stored, err := h.service.Upload(c.Request.Context(), up, actor)
	if err != nil {
		var orphaned *OrphanedBlobError
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrMissingActor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrStorageKeyConflict), errors.Is(err, ErrBlobExists):
			c.JSON(http.StatusConflict, gin.H{"error": "storage key conflict, retry upload"})
		case errors.As(err, &orphaned):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       "upload failed and cleanup did not complete",
				"storage_key": orphaned.StorageKey,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		}
		return
	}

	c.JSON(http.StatusCreated, stored)
}

func (h *httpHandler) updatePhoto(c *gin.Context) {
	actor, ok := auth.RequireActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	photoID, err := uuid.Parse(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	// Unknown fields cover the immutable ones; a patch naming storage_key
	// or uploaded_by is rejected here rather than silently dropped.
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	var patch UpdatePhoto
	if err := decoder.Decode(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patch may only contain mutable photo fields"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), photoID, patch, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		case errors.Is(err, ErrEmptyPatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "patch contains no changes"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update photo"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *httpHandler) deletePhoto(c *gin.Context) {
	actor, ok := auth.RequireActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	photoID, err := uuid.Parse(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), photoID, actor); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *httpHandler) listOrphans(c *gin.Context) {
	if _, ok := auth.RequireActor(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orphans, err := h.service.AuditOrphans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to audit storage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orphans": orphans})
}

func metaFromForm(c *gin.Context) UploadMeta {
	var meta UploadMeta
	if v, ok := c.GetPostForm("title"); ok {
		meta.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		meta.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		meta.Category = &v
	}
	if v, ok := c.GetPostForm("is_featured"); ok {
		featured := v == "true" || v == "1"
		meta.IsFeatured = &featured
	}
	if v, ok := c.GetPostForm("is_visible"); ok {
		visible := v == "true" || v == "1"
		meta.IsVisible = &visible
	}
	return meta
}
