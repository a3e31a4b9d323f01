package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/service"
	"github.com/user/movietracker/internal/utils"
)

// 上下文键
const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

// TokenCookie 页面登录后保存令牌的 Cookie 名
const TokenCookie = "token"

// RequireAuth API 鉴权：缺少令牌返回 401，令牌无效或过期返回 403
func RequireAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := tokens.Validate(extractToken(c))
		if err != nil {
			if service.KindOf(err) == service.KindUnauthenticated {
				utils.Unauthorized(c, service.MessageOf(err))
				return
			}
			utils.Forbidden(c, service.MessageOf(err))
			return
		}

		// 将用户信息存入上下文
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// RequirePageAuth 页面鉴权，未登录时重定向到登录页
func RequirePageAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := tokens.Validate(extractToken(c))
		if err != nil {
			c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth 可选登录中间件（不强制要求登录）
func OptionalAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := tokens.Validate(extractToken(c)); err == nil {
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxUsername, claims.Username)
		}
		c.Next()
	}
}

// extractToken 优先读取 Authorization Header，其次读取 Cookie
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) int {
	if userID, exists := c.Get(ctxUserID); exists {
		return userID.(int)
	}
	return 0
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
