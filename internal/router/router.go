package router

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/movietracker/internal/handler"
	"github.com/user/movietracker/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 头像
	r.Static(handler.UploadsPath, h.Config.UploadDir)

	authLimit := middleware.NewRateLimiter(h.Config.AuthRatePerMin).Middleware()

	// ==================== 页面 ====================
	pages := r.Group("")
	pages.Use(middleware.OptionalAuth(h.Tokens))
	{
		pages.GET("/login", h.LoginPage)
		pages.POST("/login", authLimit, h.LoginSubmit)
		pages.POST("/logout", h.Logout)
		pages.POST("/theme", h.SetTheme)
	}

	user := r.Group("")
	user.Use(middleware.RequirePageAuth(h.Tokens))
	{
		user.GET("/", h.DashboardPage)
		user.GET("/mylist", h.MyListPage)
		user.GET("/calendar", h.CalendarPage)
	}

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.POST("/register", authLimit, h.Register)
		api.POST("/login", authLimit, h.Login)
		api.GET("/movies/search", h.SearchMovies)
		api.GET("/calendar", h.Calendar)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(h.Tokens))
	{
		authed.GET("/user/profile", h.GetProfile)
		authed.PUT("/user/profile", h.UpdateProfile)
		authed.POST("/user/avatar", h.UploadAvatar)

		authed.POST("/movies", h.CreateMovie)
		authed.POST("/movies/import", h.ImportMovie)

		authed.GET("/watchlist", h.ListWatchList)
		authed.PUT("/watchlist", h.PutWatchList)
		authed.DELETE("/watchlist/:movieId", h.DeleteWatchList)
		authed.GET("/dashboard", h.Dashboard)
	}
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	for _, page := range []string{"login", "dashboard", "mylist", "calendar", "error"} {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", FuncMap(), assemble(viewPath)...)
	}

	return r
}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		// json 图表数据直接嵌入脚本
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
}
