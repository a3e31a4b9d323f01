package model

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// 条目类型
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
)

// CatalogEntry 影视目录条目（外部来源的只读参考数据）
type CatalogEntry struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	Type        string    `json:"type" gorm:"size:10;not null;index"`
	Genre       string    `json:"genre" gorm:"size:100"`
	ReleaseDate Date      `json:"release_date" gorm:"type:date;index"`
	Year        int       `json:"year" gorm:"index"`
	Description string    `json:"description"`
	PosterURL   string    `json:"poster_url"`
	TrailerURL  string    `json:"trailer_url"`
	Duration    int       `json:"duration"` // 分钟，剧集为累计时长
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 沿用 movies 表
func (CatalogEntry) TableName() string {
	return "movies"
}

// BeforeSave 根据上映日期同步年份
func (e *CatalogEntry) BeforeSave(tx *gorm.DB) error {
	e.SyncYear()
	return nil
}

// SyncYear 根据上映日期填充年份
func (e *CatalogEntry) SyncYear() {
	if !e.ReleaseDate.IsZero() {
		e.Year = e.ReleaseDate.Year()
	}
}

// CatalogInput 新建目录条目请求
type CatalogInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Type        string `json:"type" validate:"required,oneof=movie series"`
	Genre       string `json:"genre" validate:"max=100"`
	ReleaseDate Date   `json:"release_date"`
	Description string `json:"description"`
	PosterURL   string `json:"poster_url" validate:"omitempty,url"`
	TrailerURL  string `json:"trailer_url" validate:"omitempty,url"`
	Duration    int    `json:"duration" validate:"min=0"`
}

// CatalogQuery 目录搜索条件，均为可选且取交集
type CatalogQuery struct {
	Query string `form:"query"`
	Type  string `form:"type"`
	Genre string `form:"genre"`
	Year  int    `form:"year"`
}

// CacheKey 搜索缓存键
func (q CatalogQuery) CacheKey() string {
	return q.Query + "|" + q.Type + "|" + q.Genre + "|" + strconv.Itoa(q.Year)
}

// PremiereDay 某一天上映的条目
type PremiereDay struct {
	Date    string          `json:"date"`
	Entries []*CatalogEntry `json:"entries"`
}
