package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
	"github.com/ladypi89/website/backend/go-services/pkg/metrics"
)

// ObjectStore is the subset of storage.MinIOStorage the media endpoints need.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

const mediaPrefix = "media/"

type mediaHandler struct {
	store    ObjectStore
	maxBytes int64
	ttl      time.Duration
}

// RegisterMediaRoutes registers image upload and presigned download redirects.
// Uploaded keys are meant to be stored in partnership logos or social icons.
func RegisterMediaRoutes(r gin.IRouter, store ObjectStore, maxBytes int64, ttl time.Duration) {
	h := &mediaHandler{store: store, maxBytes: maxBytes, ttl: ttl}
	r.POST("/media", h.upload)
	r.GET("/media/*key", h.download)
}

func (h *mediaHandler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		h.reject(c, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	if fh.Size > h.maxBytes {
		h.reject(c, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	ct := fh.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err != nil || !strings.HasPrefix(mt, "image/") {
		h.reject(c, http.StatusUnsupportedMediaType, "only image uploads are accepted")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	key := mediaPrefix + uuid.NewString() + strings.ToLower(path.Ext(fh.Filename))
	if err := h.store.UploadFile(c.Request.Context(), key, f, fh.Size, ct); err != nil {
		h.fail(c, err)
		return
	}
	url, err := h.store.GetPresignedURL(c.Request.Context(), key, h.ttl)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.MediaUploads.WithLabelValues("ok").Inc()
	logger.Infof("media uploaded: %s (%d bytes)", key, fh.Size)
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

func (h *mediaHandler) download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !strings.HasPrefix(key, mediaPrefix) || strings.Contains(key, "..") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}
	ok, err := h.store.Exists(c.Request.Context(), key)
	if err != nil {
		logger.Errorf("media stat %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}
	url, err := h.store.GetPresignedURL(c.Request.Context(), key, h.ttl)
	if err != nil {
		logger.Errorf("media presign %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *mediaHandler) reject(c *gin.Context, status int, msg string) {
	metrics.MediaUploads.WithLabelValues("rejected").Inc()
	c.JSON(status, gin.H{"error": msg})
}

func (h *mediaHandler) fail(c *gin.Context, err error) {
	metrics.MediaUploads.WithLabelValues("error").Inc()
	logger.Errorf("media upload: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
