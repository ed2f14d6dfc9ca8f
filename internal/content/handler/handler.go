package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ladypi89/website/backend/go-services/internal/content"
	"github.com/ladypi89/website/backend/go-services/internal/content/service"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
)

// Handler serves the site content API.
type Handler struct {
	svc       service.Service
	contactMW []gin.HandlerFunc
}

// Option customizes route registration.
type Option func(*Handler)

// WithContactMiddleware runs mw before the public contact-form submission,
// typically a stricter rate limiter.
func WithContactMiddleware(mw ...gin.HandlerFunc) Option {
	return func(h *Handler) { h.contactMW = append(h.contactMW, mw...) }
}

var tagNamesOnce sync.Once

// RegisterContentRoutes registers every content endpoint on r. r is usually
// the /api group.
func RegisterContentRoutes(r gin.IRouter, svc service.Service, opts ...Option) {
	tagNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			content.RegisterTagNames(v)
		}
	})

	h := &Handler{svc: svc}
	for _, o := range opts {
		o(h)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})

	r.GET("/status", h.ListStatusChecks)
	r.POST("/status", h.CreateStatusCheck)

	r.GET("/biography", h.GetBiography)
	r.PUT("/biography", h.UpdateBiography)

	r.GET("/partnerships", h.ListPartnerships)
	r.POST("/partnerships", h.CreatePartnership)
	r.PUT("/partnerships/:id", h.UpdatePartnership)
	r.DELETE("/partnerships/:id", h.DeletePartnership)

	r.GET("/social-media", h.ListSocialMedia)
	r.POST("/social-media", h.CreateSocialMedia)
	r.PUT("/social-media/:id", h.UpdateSocialMedia)
	r.DELETE("/social-media/:id", h.DeleteSocialMedia)

	r.POST("/contact", append(h.contactMW, h.CreateContact)...)
	r.GET("/contact", h.ListContacts)
	r.PUT("/contact/:id/status", h.SetContactStatus)

	r.GET("/streaming-status", h.GetStreamingStatus)
	r.PUT("/streaming-status", h.SetStreamingStatus)
}

// bindBody decodes and validates the JSON body, answering 422 on failure.
func bindBody(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidation(c, http.StatusUnprocessableEntity, content.FromValidator(err))
		return false
	}
	return true
}

func respondValidation(c *gin.Context, status int, ve *content.ValidationError) {
	c.JSON(status, gin.H{"error": "validation failed", "fields": ve.Fields})
}

// respondError maps service errors to status codes. what is the capitalised
// singular resource name used in 404 messages.
func respondError(c *gin.Context, what string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case content.IsValidation(err):
		respondValidation(c, http.StatusUnprocessableEntity, content.FromValidator(err))
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
