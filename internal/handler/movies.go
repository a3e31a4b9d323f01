package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/service"
	"github.com/user/movietracker/internal/utils"
)

// SearchMovies 目录搜索，无结果时返回空数组
func (h *Handler) SearchMovies(c *gin.Context) {
	var q model.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "year must be a number")
		return
	}

	entries, err := h.Catalog.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// CreateMovie 新增目录条目
func (h *Handler) CreateMovie(c *gin.Context) {
	var in model.CatalogInput
	if !bindJSON(c, &in) {
		return
	}

	entry, err := h.Catalog.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ImportMovie 从 TMDB 导入目录条目
func (h *Handler) ImportMovie(c *gin.Context) {
	var in service.ImportInput
	if !bindJSON(c, &in) {
		return
	}

	entry, err := h.TMDB.Import(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

type calendarQuery struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

// Calendar 某月上映日历
func (h *Handler) Calendar(c *gin.Context) {
	var q calendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "year and month must be numbers")
		return
	}

	days, err := h.Catalog.Premieres(c.Request.Context(), q.Year, q.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}
