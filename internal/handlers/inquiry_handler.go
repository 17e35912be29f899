package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/greenleaf/garden-api/internal/models"
)

var inquiryStatuses = map[string]bool{
	models.InquiryStatusNew:      true,
	models.InquiryStatusRead:     true,
	models.InquiryStatusReplied:  true,
	models.InquiryStatusArchived: true,
}

func (h *Handler) inquiries() *resource[models.Inquiry, models.InquiryPatch] {
	return &resource[models.Inquiry, models.InquiryPatch]{
		h:     h,
		repo:  h.Store.Inquiries,
		label: "Inquiry",
		// /api/admin/inquiries?status=New
		filter: func(c *gin.Context) (bson.M, bool) {
			status := c.Query("status")
			if status == "" {
				return nil, true
			}
			if !inquiryStatuses[status] {
				fieldError(c, "status", "must be one of: New Read Replied Archived")
				return nil, false
			}
			return bson.M{"status": status}, true
		},
	}
}

// SubmitContact stores a message from the public contact form.
func (h *Handler) SubmitContact(c *gin.Context) {
	var inquiry models.Inquiry
	if !bindJSON(c, &inquiry) {
		return
	}
	inquiry.ID = ""
	inquiry.Status = models.InquiryStatusNew

	created, err := h.Store.Inquiries.Create(c.Request.Context(), &inquiry)
	if err != nil {
		h.respondError(c, "Inquiry", err)
		return
	}

	h.Logger.InfoContext(c.Request.Context(), "inquiry received", "id", created.ID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your message. We will be in touch soon.",
		"inquiry": created,
	})
}
