package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/config"
	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/middleware"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/service"
	"github.com/user/movietracker/internal/utils"
)

// Session 键
const (
	sessionUserKey  = "userinfo"
	sessionThemeKey = "theme"
)

// Handler HTTP 处理器
type Handler struct {
	Config    *config.Config
	Tokens    *service.TokenService
	Auth      *service.AuthService
	Profile   *service.ProfileService
	Catalog   *service.CatalogService
	WatchList *service.WatchListService
	TMDB      *service.TMDBService
}

// Stores 处理器依赖的存储
type Stores struct {
	Users     service.UserStore
	Catalog   service.CatalogStore
	WatchList service.WatchListStore
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, stores Stores) *Handler {
	tokens := service.NewTokenService(cfg.AppSecret, cfg.JWTExpiry)
	catalog := service.NewCatalogService(stores.Catalog)

	return &Handler{
		Config:    cfg,
		Tokens:    tokens,
		Auth:      service.NewAuthService(stores.Users, tokens, cfg.BcryptCost),
		Profile:   service.NewProfileService(stores.Users),
		Catalog:   catalog,
		WatchList: service.NewWatchListService(stores.WatchList),
		TMDB:      service.NewTMDBService(catalog, cfg.TMDBToken),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"Path":     c.Request.URL.Path,
		"Theme":    model.ThemeLight,
	}

	session := sessions.Default(c)
	if userinfo := session.Get(sessionUserKey); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}
	if theme, ok := session.Get(sessionThemeKey).(string); ok && theme != "" {
		res["Theme"] = theme
	}

	// 菜单高亮逻辑
	res["ActiveMenu"] = activeMenu(c.Request.URL.Path)

	for k, v := range data {
		res[k] = v
	}
	return res
}

func activeMenu(path string) string {
	switch path {
	case "/":
		return "dashboard"
	case "/mylist":
		return "mylist"
	case "/calendar":
		return "calendar"
	default:
		return ""
	}
}

// statusOf 业务错误类别对应的 HTTP 状态码
func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindConflict:
		return http.StatusBadRequest
	case service.KindInvalidCredentials, service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError 统一错误输出，存储错误只记录日志不向外暴露
func respondError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	if kind == service.KindStore {
		log := logging.With("handler")
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("请求处理失败")
		utils.InternalServerError(c)
		return
	}
	utils.Error(c, statusOf(kind), service.MessageOf(err))
}

// bindJSON 解析请求体，失败时直接返回 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
