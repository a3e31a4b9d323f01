package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/movietracker/internal/middleware"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/utils"
)

// ListWatchList 过滤排序后的清单及当前视图统计
func (h *Handler) ListWatchList(c *gin.Context) {
	var f model.WatchFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		utils.BadRequest(c, "Invalid query")
		return
	}

	items, stats, err := h.WatchList.List(c.Request.Context(), middleware.GetUserID(c), f, c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "stats": stats})
}

// PutWatchList 添加或更新清单条目
func (h *Handler) PutWatchList(c *gin.Context) {
	var in model.WatchInput
	if !bindJSON(c, &in) {
		return
	}
	if in.MovieID <= 0 {
		utils.BadRequest(c, "movie_id is required")
		return
	}

	ctx := c.Request.Context()
	entry, err := h.Catalog.Get(ctx, in.MovieID)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.WatchList.AddOrUpdate(ctx, middleware.GetUserID(c), entry, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteWatchList 删除清单条目
func (h *Handler) DeleteWatchList(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil || movieID <= 0 {
		utils.BadRequest(c, "Invalid movie id")
		return
	}

	if err := h.WatchList.Remove(c.Request.Context(), middleware.GetUserID(c), movieID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard 首页统计
func (h *Handler) Dashboard(c *gin.Context) {
	dash, err := h.WatchList.Dashboard(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
