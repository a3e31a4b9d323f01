package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/middleware"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/utils"
)

// UploadsPath 头像访问路径前缀
const UploadsPath = "/uploads"

// 允许的头像格式
var avatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// GetProfile 当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Profile.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile 更新资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	var upd model.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}

	user, err := h.Profile.Update(c.Request.Context(), middleware.GetUserID(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadAvatar 上传头像，按内容识别格式而不是扩展名
func (h *Handler) UploadAvatar(c *gin.Context) {
	limit := h.Config.MaxUploadBytes
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)

	fh, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequest(c, "avatar file is required")
		return
	}
	if fh.Size > limit {
		utils.BadRequest(c, fmt.Sprintf("avatar must be at most %d MB", limit>>20))
		return
	}

	f, err := fh.Open()
	if err != nil {
		utils.BadRequest(c, "avatar file is unreadable")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil || int64(len(data)) > limit {
		utils.BadRequest(c, "avatar file is unreadable")
		return
	}

	ext, ok := avatarTypes[mimetype.Detect(data).String()]
	if !ok {
		utils.BadRequest(c, "avatar must be a png, jpeg, gif or webp image")
		return
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	err = os.MkdirAll(h.Config.UploadDir, 0o755)
	if err == nil {
		err = os.WriteFile(filepath.Join(h.Config.UploadDir, name), data, 0o644)
	}
	if err != nil {
		log := logging.With("upload")
		log.Error().Err(err).Str("dir", h.Config.UploadDir).Msg("保存头像失败")
		utils.InternalServerError(c)
		return
	}

	avatarURL := UploadsPath + "/" + name
	if err := h.Profile.SetAvatar(c.Request.Context(), middleware.GetUserID(c), avatarURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
}
