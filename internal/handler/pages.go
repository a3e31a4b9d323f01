package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/middleware"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/service"
	"golang.org/x/sync/errgroup"
)

// ==================== 认证页面 ====================

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	// 如果已经登录，直接跳转到首页
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "Sign in - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
		"Email":    "",
		"Error":    "",
	}))
}

// LoginSubmit 页面登录，令牌写入 Cookie，用户信息写入 Session
func (h *Handler) LoginSubmit(c *gin.Context) {
	redirect := safeRedirect(c.PostForm("redirect"))

	sess, err := h.Auth.Login(c.Request.Context(), service.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		c.HTML(statusOf(service.KindOf(err)), "login.html", h.RenderData(c, gin.H{
			"Title":    "Sign in - " + h.Config.SiteName,
			"Error":    service.MessageOf(err),
			"Email":    c.PostForm("email"),
			"Redirect": redirect,
		}))
		return
	}

	c.SetCookie(middleware.TokenCookie, sess.Token, int(h.Tokens.Expiry().Seconds()), "/", "", h.Config.IsProduction(), true)

	session := sessions.Default(c)
	session.Set(sessionUserKey, model.SessionUser{
		ID:       sess.User.ID,
		Username: sess.User.Username,
		Theme:    sess.User.ThemePreference,
	})
	session.Set(sessionThemeKey, sess.User.ThemePreference)
	_ = session.Save()

	c.Redirect(http.StatusFound, redirect)
}

// Logout 登出；令牌不在服务端保存，只能由客户端丢弃
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.Config.IsProduction(), true)

	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()

	c.Redirect(http.StatusFound, "/login")
}

// SetTheme 切换主题，已登录时同步保存到资料
func (h *Handler) SetTheme(c *gin.Context) {
	theme := c.PostForm("theme")
	if theme != model.ThemeDark {
		theme = model.ThemeLight
	}

	session := sessions.Default(c)
	session.Set(sessionThemeKey, theme)
	_ = session.Save()

	if userID := middleware.GetUserID(c); userID > 0 {
		ctx := c.Request.Context()
		user, err := h.Profile.Get(ctx, userID)
		if err == nil {
			_, err = h.Profile.Update(ctx, userID, model.ProfileUpdate{
				Username:        user.Username,
				Description:     user.Description,
				ThemePreference: theme,
			})
		}
		// Session 已切换，保存资料失败不影响本次跳转
		if err != nil {
			log := logging.With("handler")
			log.Warn().Err(err).Int("user_id", userID).Str("theme", theme).Msg("保存主题偏好失败")
		}
	}

	c.Redirect(http.StatusFound, safeRedirect(c.PostForm("redirect")))
}

// ==================== 用户页面 ====================

// DashboardPage 首页：汇总、最近观看、图表
func (h *Handler) DashboardPage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var (
		user *model.User
		dash *model.Dashboard
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		user, err = h.Profile.Get(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		dash, err = h.WatchList.Dashboard(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", h.RenderData(c, gin.H{
		"Title":     "Dashboard - " + h.Config.SiteName,
		"User":      user,
		"Dashboard": dash,
	}))
}

// MyListPage 我的清单，按状态标签页展示
func (h *Handler) MyListPage(c *gin.Context) {
	f := model.WatchFilter{
		Status: c.DefaultQuery("status", model.StatusAll),
		Type:   c.Query("type"),
		Genre:  c.Query("genre"),
	}
	sortKey := c.DefaultQuery("sort", model.SortDateDesc)

	items, stats, err := h.WatchList.List(c.Request.Context(), middleware.GetUserID(c), f, sortKey)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "mylist.html", h.RenderData(c, gin.H{
		"Title":    "My List - " + h.Config.SiteName,
		"Items":    items,
		"Stats":    stats,
		"Filter":   f,
		"Sort":     sortKey,
		"SortKeys": model.SortKeys,
		"Statuses": append([]string{model.StatusAll}, model.Statuses...),
	}))
}

// CalendarPage 上映日历
func (h *Handler) CalendarPage(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v, err := strconv.Atoi(c.Query("year")); err == nil {
		year = v
	}
	if v, err := strconv.Atoi(c.Query("month")); err == nil {
		month = v
	}

	days, err := h.Catalog.Premieres(c.Request.Context(), year, month)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "calendar.html", h.RenderData(c, gin.H{
		"Title": "Calendar - " + h.Config.SiteName,
		"Days":  days,
		"Year":  year,
		"Month": time.Month(month).String(),
		"Prev":  time.Date(year, time.Month(month)-1, 1, 0, 0, 0, 0, time.UTC),
		"Next":  time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC),
	}))
}

// renderError 页面错误
func (h *Handler) renderError(c *gin.Context, err error) {
	status := statusOf(service.KindOf(err))
	if status == http.StatusInternalServerError {
		c.Error(err)
	}
	c.HTML(status, "error.html", h.RenderData(c, gin.H{
		"Title":   "Error - " + h.Config.SiteName,
		"Message": service.MessageOf(err),
	}))
}

// safeRedirect 只允许站内跳转
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}
