// internal/api/handlers/upload_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"animal-finder-api-server/internal/apperrors"
	"animal-finder-api-server/internal/storage"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	Uploader storage.Uploader
	Logger   *slog.Logger
	// Now stamps object keys; nil means time.Now.
	Now func() time.Time
}

// Upload stores the multipart "file" field in object storage and returns its public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Logger.Warn("no file uploaded", "error", err)
		c.Error(apperrors.ErrNoFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperrors.ErrValidation.WithMessage("Could not read uploaded file").WithDetails(err.Error()))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	key := storage.ObjectKey(fileHeader.Filename, now())

	location, err := h.Uploader.Upload(c.Request.Context(), key, file, contentType)
	if err != nil {
		c.Error(apperrors.StorageFailure(err))
		return
	}

	h.Logger.Info("file uploaded", "key", key, "size", fileHeader.Size, "contentType", contentType)
	c.JSON(http.StatusOK, gin.H{"message": "File uploaded successfully.", "location": location})
}
