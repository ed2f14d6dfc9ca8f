package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladypi89/website/backend/go-services/internal/content"
)

func (h *Handler) ListStatusChecks(c *gin.Context) {
	list, err := h.svc.ListStatusChecks(c.Request.Context())
	if err != nil {
		respondError(c, "Status check", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateStatusCheck(c *gin.Context) {
	var req content.StatusCheckCreate
	if !bindBody(c, &req) {
		return
	}
	sc, err := h.svc.CreateStatusCheck(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Status check", err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *Handler) GetBiography(c *gin.Context) {
	b, err := h.svc.GetBiography(c.Request.Context())
	if err != nil {
		respondError(c, "Biography", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBiography(c *gin.Context) {
	var req content.BiographyUpdate
	if !bindBody(c, &req) {
		return
	}
	b, err := h.svc.UpdateBiography(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Biography", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) ListPartnerships(c *gin.Context) {
	list, err := h.svc.ListPartnerships(c.Request.Context())
	if err != nil {
		respondError(c, "Partnership", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreatePartnership(c *gin.Context) {
	var req content.PartnershipCreate
	if !bindBody(c, &req) {
		return
	}
	p, err := h.svc.CreatePartnership(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Partnership", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePartnership(c *gin.Context) {
	var req content.PartnershipUpdate
	if !bindBody(c, &req) {
		return
	}
	p, err := h.svc.UpdatePartnership(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Partnership", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePartnership(c *gin.Context) {
	if err := h.svc.DeletePartnership(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Partnership", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Partnership deleted successfully"})
}

func (h *Handler) ListSocialMedia(c *gin.Context) {
	list, err := h.svc.ListSocialMedia(c.Request.Context())
	if err != nil {
		respondError(c, "Social media", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateSocialMedia(c *gin.Context) {
	var req content.SocialMediaCreate
	if !bindBody(c, &req) {
		return
	}
	sm, err := h.svc.CreateSocialMedia(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Social media", err)
		return
	}
	c.JSON(http.StatusOK, sm)
}

func (h *Handler) UpdateSocialMedia(c *gin.Context) {
	var req content.SocialMediaUpdate
	if !bindBody(c, &req) {
		return
	}
	sm, err := h.svc.UpdateSocialMedia(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Social media", err)
		return
	}
	c.JSON(http.StatusOK, sm)
}

func (h *Handler) DeleteSocialMedia(c *gin.Context) {
	if err := h.svc.DeleteSocialMedia(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Social media", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Social media deleted successfully"})
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req content.ContactFormCreate
	if !bindBody(c, &req) {
		return
	}
	cf, err := h.svc.CreateContact(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Contact", err)
		return
	}
	c.JSON(http.StatusOK, cf)
}

func (h *Handler) ListContacts(c *gin.Context) {
	list, err := h.svc.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, "Contact", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type contactStatusQuery struct {
	Status string `form:"status" binding:"required,oneof=new read responded"`
}

// SetContactStatus rejects bad enum values with 400 before any store access.
func (h *Handler) SetContactStatus(c *gin.Context) {
	var q contactStatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, http.StatusBadRequest, content.FromValidator(err))
		return
	}
	if err := h.svc.SetContactStatus(c.Request.Context(), c.Param("id"), content.ContactStatus(q.Status)); err != nil {
		respondError(c, "Contact", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Contact status updated to %s", q.Status)})
}

func (h *Handler) GetStreamingStatus(c *gin.Context) {
	st, err := h.svc.GetStreamingStatus(c.Request.Context())
	if err != nil {
		respondError(c, "Streaming status", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type streamingStatusQuery struct {
	Status string `form:"status" binding:"required,oneof=online offline streaming"`
	Game   string `form:"game"`
}

func (h *Handler) SetStreamingStatus(c *gin.Context) {
	var q streamingStatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, http.StatusBadRequest, content.FromValidator(err))
		return
	}
	st, err := h.svc.SetStreamingStatus(c.Request.Context(), content.StreamState(q.Status), q.Game)
	if err != nil {
		respondError(c, "Streaming status", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
