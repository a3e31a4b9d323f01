package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/service"
)

// Register 注册，成功后直接返回令牌
func (h *Handler) Register(c *gin.Context) {
	var in service.RegisterInput
	if !bindJSON(c, &in) {
		return
	}

	sess, err := h.Auth.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var in service.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	sess, err := h.Auth.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
