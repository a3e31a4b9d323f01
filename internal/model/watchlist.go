package model

import (
	"time"
)

// 清单状态
const (
	StatusWatched  = "watched"
	StatusWatching = "watching"
	StatusPlanning = "planning"
	StatusDropped  = "dropped"

	// StatusAll 仅用于过滤，表示不过滤状态
	StatusAll = "all"
)

// Statuses 全部可用状态
var Statuses = []string{StatusWatched, StatusWatching, StatusPlanning, StatusDropped}

// 排序方式
const (
	SortDateDesc   = "date-desc"
	SortDateAsc    = "date-asc"
	SortTitleAsc   = "title-asc"
	SortTitleDesc  = "title-desc"
	SortRatingDesc = "rating-desc"
	SortRatingAsc  = "rating-asc"
)

// SortKeys 全部排序方式，第一个为默认值
var SortKeys = []string{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortRatingDesc, SortRatingAsc}

// DefaultDuration 目录缺少时长时的默认分钟数
const DefaultDuration = 120

// WatchListItem 用户清单条目，添加时复制目录条目信息
type WatchListItem struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	UserID      int       `json:"user_id" gorm:"not null;uniqueIndex:idx_watchlist_user_movie"`
	MovieID     int       `json:"movie_id" gorm:"not null;uniqueIndex:idx_watchlist_user_movie"`
	Title       string    `json:"title" gorm:"size:255"`
	Type        string    `json:"type" gorm:"size:10"`
	Genre       string    `json:"genre" gorm:"size:100"`
	Year        int       `json:"year"`
	Poster      string    `json:"poster"`
	Duration    int       `json:"duration"`
	Status      string    `json:"status" gorm:"size:16;not null;index"`
	Rating      int       `json:"rating"`
	Review      string    `json:"review"`
	WatchedDate Date      `json:"watched_date" gorm:"type:date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 表名
func (WatchListItem) TableName() string {
	return "watchlist_items"
}

// WatchInput 添加/更新清单条目的请求
type WatchInput struct {
	MovieID int    `json:"movie_id" validate:"required,gt=0"`
	Status  string `json:"status" validate:"required,oneof=watched watching planning dropped"`
	Rating  int    `json:"rating" validate:"min=0,max=5"`
	Review  string `json:"review" validate:"max=5000"`
}

// WatchFilter 清单过滤条件
type WatchFilter struct {
	Status string `form:"status"`
	Type   string `form:"type"`
	Genre  string `form:"genre"`
}

// ListStats 当前视图统计
type ListStats struct {
	Count      int `json:"count"`
	TotalHours int `json:"total_hours"`
}

// DashboardSummary 全量清单汇总
type DashboardSummary struct {
	MovieCount    int     `json:"movie_count"`
	SeriesCount   int     `json:"series_count"`
	TotalHours    int     `json:"total_hours"`
	AverageRating float64 `json:"average_rating"`
}

// ChartPoint 图表数据点
type ChartPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartData 统计图表数据
type ChartData struct {
	ByType  []ChartPoint `json:"by_type"`
	ByGenre []ChartPoint `json:"by_genre"`
	ByMonth []ChartPoint `json:"by_month"`
}

// Dashboard 首页数据
type Dashboard struct {
	Summary DashboardSummary `json:"summary"`
	Recent  []*WatchListItem `json:"recent"`
	Charts  ChartData        `json:"charts"`
}
