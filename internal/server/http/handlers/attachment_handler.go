package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
	"github.com/polkiloo/printshop/internal/usecase"
)

// AttachmentHandler accepts order files.
type AttachmentHandler struct {
	facade  AttachmentFacade
	maxSize int64
}

// NewAttachmentHandler creates AttachmentHandler instance. Files larger than
// maxSize are rejected when maxSize is positive.
func NewAttachmentHandler(facade AttachmentFacade, maxSize int64) *AttachmentHandler {
	return &AttachmentHandler{facade: facade, maxSize: maxSize}
}

// Upload handles POST /api/orders/:id/attachments.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "file is required")
		return
	}
	if h.maxSize > 0 && header.Size > h.maxSize {
		abortWithError(c, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	upload, err := h.facade.UploadAttachment(c.Request.Context(), CurrentPrincipal(c), orderID, usecase.UploadInput{
		FileType: model.FileType(c.PostForm("file_type")),
		FileName: header.Filename,
		Content:  file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UploadResponse{
		Attachment: attachmentResponse(*upload.Attachment),
		Refresh:    refreshPaths(upload.Affected),
	})
}

// List handles GET /api/orders/:id/attachments.
func (h *AttachmentHandler) List(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	attachments, err := h.facade.Attachments(c.Request.Context(), CurrentPrincipal(c).CompanyID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		resp = append(resp, attachmentResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func attachmentResponse(a model.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:         a.ID,
		OrderID:    a.OrderID,
		FileType:   string(a.FileType),
		FileName:   a.FileName,
		URL:        a.URL,
		UploadedBy: a.UploadedBy,
		CreatedAt:  a.CreatedAt,
	}
}
