// internal/handlers/artwork.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/i18n"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

type ArtworkHandler struct {
	artworkService *services.ArtworkService
}

func NewArtworkHandler(artworkService *services.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
	}
}

// POST /artwork/upload
func (h *ArtworkHandler) UploadArtwork(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	var targetAreaID *uuid.UUID
	if idStr := c.PostForm("target_area_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid target area ID", nil)
			return
		}
		targetAreaID = &id
	}

	result, err := h.artworkService.UploadArtwork(file, header, targetAreaID)
	if err != nil {
		h.respondUploadError(c, lang, err)
		return
	}

	if result.Duplicate {
		utils.SuccessResponse(c, gin.H{
			"message":   i18n.T(lang, i18n.KeyArtworkUploaded),
			"artwork":   result.Asset,
			"duplicate": true,
		})
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyArtworkUploaded),
		"artwork":      result.Asset,
		"download_url": result.DownloadURL,
	})
}

// GET /artwork/:id
func (h *ArtworkHandler) GetArtwork(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid artwork ID", nil)
		return
	}

	result, err := h.artworkService.GetArtworkWithDownloadURL(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "artwork")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"artwork":      result.Asset,
		"download_url": result.DownloadURL,
	})
}

// DELETE /artwork/:id
func (h *ArtworkHandler) DeleteArtwork(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid artwork ID", nil)
		return
	}

	if err := h.artworkService.DeleteArtwork(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "artwork")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminActionSuccess),
	})
}

func (h *ArtworkHandler) respondUploadError(c *gin.Context, lang string, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "exceeds maximum"):
		utils.ErrorResponse(c, http.StatusBadRequest, "FILE_TOO_LARGE", i18n.T(lang, i18n.KeyFileTooLarge), msg)

	case strings.Contains(msg, "not allowed"),
		strings.Contains(msg, "unsupported artwork format"),
		strings.Contains(msg, "does not match"):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_FILE_TYPE", i18n.T(lang, i18n.KeyFileInvalidType), msg)

	case strings.Contains(msg, "design area not found"):
		utils.NotFoundResponse(c, "design_area")

	default:
		utils.InternalErrorResponse(c, msg)
	}
}
