package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movietracker/internal/config"
	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/middleware"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/repository"
	"github.com/user/movietracker/internal/service"
)

// brokenProfileStore 资料写入总是失败
type brokenProfileStore struct {
	service.UserStore
}

func (brokenProfileStore) UpdateProfile(ctx context.Context, userID int, upd model.ProfileUpdate) error {
	return errors.New("connection reset")
}

func TestSetThemeLogsProfileSaveFailure(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Format: "json", Output: &buf})
	defer logging.Init(logging.Config{Level: "info", Format: "json"})

	users := repository.NewMemoryStore().Users()
	neo := &model.User{Username: "neo", Email: "neo@zion.io", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), neo))

	cfg := &config.Config{AppSecret: "pages-test-secret", JWTExpiry: time.Hour, SiteName: "Movie Tracker"}
	h := NewHandler(cfg, Stores{Users: brokenProfileStore{users}})
	token, err := h.Tokens.Issue(neo.ID, neo.Username)
	require.NoError(t, err)

	r := gin.New()
	r.Use(sessions.Sessions("mtsession", cookie.NewStore([]byte(cfg.AppSecret))))
	r.POST("/theme", middleware.OptionalAuth(h.Tokens), h.SetTheme)

	form := url.Values{"theme": {"dark"}, "redirect": {"/mylist"}}
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Session 中的主题照常切换并跳转
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/mylist", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())

	logged := buf.String()
	assert.Contains(t, logged, `"level":"warn"`)
	assert.Contains(t, logged, "connection reset")
	assert.Contains(t, logged, `"user_id":1`)

	stored, err := users.FindByID(context.Background(), neo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, stored.ThemePreference)
}
