package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skillswap/skillswap-backend/internal/interface/http/dto"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/logger"
	"github.com/skillswap/skillswap-backend/internal/storage"
	"github.com/skillswap/skillswap-backend/internal/usecase/user"
)

// MediaHandler управляет загрузкой аватаров.
type MediaHandler struct {
	storage     *storage.PhotoStorage
	setAvatarUC *user.SetAvatarUseCase
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(storage *storage.PhotoStorage, setAvatarUC *user.SetAvatarUseCase) *MediaHandler {
	return &MediaHandler{storage: storage, setAvatarUC: setAvatarUC}
}

// UploadAvatar обрабатывает POST /api/users/avatar (multipart, поле file).
func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	if file.Size == 0 {
		response.BadRequest(c, "File cannot be empty")
		return
	}
	if file.Size > h.storage.MaxUploadBytes() {
		response.BadRequest(c, fmt.Sprintf("File exceeds %d MB", h.storage.MaxUploadBytes()/(1024*1024)))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	// расширение и магические байты должны совпадать
	body, ext, err := storage.DetectImage(file.Filename, src)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	relativePath, err := h.storage.Save(c.Request.Context(), userID, ext, body)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			response.BadRequest(c, "File is too large")
			return
		}
		response.Error(c, err)
		return
	}

	avatarURL := storage.PublicURL(relativePath)
	u, previous, err := h.setAvatarUC.Execute(c.Request.Context(), userID, avatarURL)
	if err != nil {
		h.removeFile(c, avatarURL)
		response.Error(c, err)
		return
	}
	if strings.HasPrefix(previous, storage.PublicPrefix+"/") {
		h.removeFile(c, previous)
	}

	response.OK(c, gin.H{
		"message": "Avatar uploaded successfully",
		"avatar":  avatarURL,
		"user":    dto.ToProfileResponse(u),
	})
}

func (h *MediaHandler) removeFile(c *gin.Context, url string) {
	if err := h.storage.Delete(c.Request.Context(), url); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"path":  url,
			"error": err.Error(),
		}).Warn("media: не удалось удалить файл")
	}
}

