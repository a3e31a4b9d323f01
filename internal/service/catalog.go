package service

import (
	"context"
	"strings"
	"time"

	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/metrics"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/utils"
	"golang.org/x/sync/singleflight"
)

// SearchLimit 单次搜索最多返回条数
const SearchLimit = 50

// SearchCacheTTL 搜索缓存有效期；其他进程写入目录后最多滞后这么久
const SearchCacheTTL = 30 * time.Second

// CatalogService 影视目录查询
type CatalogService struct {
	store CatalogStore
	cache *utils.SearchCache[[]*model.CatalogEntry]
	sf    singleflight.Group
	now   func() time.Time
}

// NewCatalogService 创建目录服务
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{
		store: store,
		cache: utils.NewSearchCache[[]*model.CatalogEntry](1000, SearchCacheTTL),
		now:   time.Now,
	}
}

// Search 条件搜索，条件可选且取交集，按标题升序，最多 SearchLimit 条
// 无结果时返回空切片
func (s *CatalogService) Search(ctx context.Context, q model.CatalogQuery) ([]*model.CatalogEntry, error) {
	q.Query = strings.TrimSpace(q.Query)
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	q.Genre = strings.TrimSpace(q.Genre)

	key := q.CacheKey()
	if cached, ok := s.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return cached, nil
	}
	metrics.RecordCacheLookup(false)

	// 使用 singleflight 避免并发请求同一条件
	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		entries, err := s.store.Search(ctx, q, SearchLimit)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []*model.CatalogEntry{}
		}
		s.cache.Set(key, entries)
		return entries, nil
	})
	if err != nil {
		log := logging.With("catalog")
		log.Error().Err(err).Msg("目录搜索失败")
		return nil, storeError(err)
	}
	return val.([]*model.CatalogEntry), nil
}

// Get 根据 ID 获取条目
func (s *CatalogService) Get(ctx context.Context, id int) (*model.CatalogEntry, error) {
	entry, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if entry == nil {
		return nil, notFound("Movie not found")
	}
	return entry, nil
}

// Create 新增条目，成功后清空搜索缓存
func (s *CatalogService) Create(ctx context.Context, in model.CatalogInput) (*model.CatalogEntry, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	entry := &model.CatalogEntry{
		Title:       in.Title,
		Type:        in.Type,
		Genre:       strings.TrimSpace(in.Genre),
		ReleaseDate: in.ReleaseDate,
		Description: in.Description,
		PosterURL:   in.PosterURL,
		TrailerURL:  in.TrailerURL,
		Duration:    in.Duration,
	}
	entry.SyncYear()

	if err := s.store.Create(ctx, entry); err != nil {
		return nil, storeError(err)
	}
	s.cache.Clear()
	return entry, nil
}

// Premieres 指定月份的上映条目，按日期分组
// month 为 0 时使用当前年月
func (s *CatalogService) Premieres(ctx context.Context, year, month int) ([]model.PremiereDay, error) {
	if year == 0 && month == 0 {
		now := s.now()
		year, month = now.Year(), int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, validationError("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, validationError("year must be positive")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	entries, err := s.store.ListReleasedBetween(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, storeError(err)
	}

	days := []model.PremiereDay{}
	for _, e := range entries {
		date := e.ReleaseDate.String()
		if n := len(days); n > 0 && days[n-1].Date == date {
			days[n-1].Entries = append(days[n-1].Entries, e)
			continue
		}
		days = append(days, model.PremiereDay{Date: date, Entries: []*model.CatalogEntry{e}})
	}
	return days, nil
}
