package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/metrics"
	"github.com/user/movietracker/internal/model"
)

// RecentLimit 首页最近观看条数
const RecentLimit = 5

const lockStripes = 64

// WatchListService 用户清单管理
type WatchListService struct {
	store WatchListStore
	locks [lockStripes]sync.Mutex
	now   func() time.Time
}

// NewWatchListService 创建清单服务
func NewWatchListService(store WatchListStore) *WatchListService {
	return &WatchListService{
		store: store,
		now:   time.Now,
	}
}

// lock 同一用户的写操作串行执行
func (s *WatchListService) lock(userID int) func() {
	m := &s.locks[uint(userID)%lockStripes]
	m.Lock()
	return m.Unlock
}

// AddOrUpdate 按目录条目 ID 插入或覆盖
// 已存在时只覆盖状态、评分、短评和观看日期；新建时复制目录信息
func (s *WatchListService) AddOrUpdate(ctx context.Context, userID int, entry *model.CatalogEntry, in model.WatchInput) (*model.WatchListItem, error) {
	if entry == nil {
		return nil, notFound("Movie not found")
	}
	if in.MovieID == 0 {
		in.MovieID = entry.ID
	}
	if in.MovieID != entry.ID {
		return nil, validationError("movie_id does not match catalog entry")
	}
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	unlock := s.lock(userID)
	defer unlock()

	existing, err := s.store.Get(ctx, userID, entry.ID)
	if err != nil {
		return nil, storeError(err)
	}

	item := existing
	op := "update"
	if item == nil {
		op = "add"
		duration := entry.Duration
		if duration <= 0 {
			duration = model.DefaultDuration
		}
		item = &model.WatchListItem{
			UserID:   userID,
			MovieID:  entry.ID,
			Title:    entry.Title,
			Type:     entry.Type,
			Genre:    entry.Genre,
			Year:     entry.Year,
			Poster:   entry.PosterURL,
			Duration: duration,
		}
	}
	item.Status = in.Status
	item.Rating = in.Rating
	item.Review = in.Review
	item.WatchedDate = model.NewDate(s.now())

	if err := s.store.Put(ctx, item); err != nil {
		log := logging.With("watchlist")
		log.Error().Err(err).Int("user_id", userID).Int("movie_id", entry.ID).Msg("保存清单条目失败")
		return nil, storeError(err)
	}

	metrics.RecordWatchListMutation(op)
	return item, nil
}

// Remove 删除条目，不存在时返回 NotFound
func (s *WatchListService) Remove(ctx context.Context, userID, movieID int) error {
	unlock := s.lock(userID)
	defer unlock()

	deleted, err := s.store.Delete(ctx, userID, movieID)
	if err != nil {
		log := logging.With("watchlist")
		log.Error().Err(err).Int("user_id", userID).Int("movie_id", movieID).Msg("删除清单条目失败")
		return storeError(err)
	}
	if !deleted {
		return notFound("Item not found")
	}

	metrics.RecordWatchListMutation("remove")
	return nil
}

// List 过滤并排序，同时返回当前视图的统计
func (s *WatchListService) List(ctx context.Context, userID int, f model.WatchFilter, sortKey string) ([]*model.WatchListItem, model.ListStats, error) {
	if err := validateFilter(f); err != nil {
		return nil, model.ListStats{}, err
	}
	if sortKey == "" {
		sortKey = model.SortDateDesc
	}
	if !validSortKeys[sortKey] {
		return nil, model.ListStats{}, validationError("sort must be one of [date-desc date-asc title-asc title-desc rating-desc rating-asc]")
	}

	all, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, model.ListStats{}, storeError(err)
	}

	items := SortItems(FilterItems(all, f), sortKey)
	return items, Stats(items), nil
}

// Dashboard 全量汇总、最近观看和图表数据
func (s *WatchListService) Dashboard(ctx context.Context, userID int) (*model.Dashboard, error) {
	all, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return &model.Dashboard{
		Summary: AggregateDashboard(all),
		Recent:  Recent(all, RecentLimit),
		Charts:  Charts(all),
	}, nil
}

func validateFilter(f model.WatchFilter) error {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	switch status {
	case "", model.StatusAll, model.StatusWatched, model.StatusWatching, model.StatusPlanning, model.StatusDropped:
	default:
		return validationError("status must be one of [all watched watching planning dropped]")
	}
	switch strings.ToLower(strings.TrimSpace(f.Type)) {
	case "", model.TypeMovie, model.TypeSeries:
	default:
		return validationError("type must be one of [movie series]")
	}
	return nil
}
