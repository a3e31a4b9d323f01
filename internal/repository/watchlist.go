package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/movietracker/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchListRepository 用户清单仓库
type WatchListRepository struct {
	db *gorm.DB
}

func NewWatchListRepository(db *gorm.DB) *WatchListRepository {
	return &WatchListRepository{db: db}
}

// Get 按 (user_id, movie_id) 获取条目，不存在时返回 nil, nil
func (r *WatchListRepository) Get(ctx context.Context, userID, movieID int) (*model.WatchListItem, error) {
	var item model.WatchListItem
	err := r.db.WithContext(ctx).Where("user_id = ? AND movie_id = ?", userID, movieID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get watchlist item: %w", err)
	}
	return &item, nil
}

// Put 插入或更新；冲突时只覆盖用户可编辑字段，复制的目录信息保持不变
func (r *WatchListRepository) Put(ctx context.Context, item *model.WatchListItem) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "rating", "review", "watched_date", "updated_at"}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("upsert watchlist item: %w", err)
	}
	return nil
}

// Delete 删除条目，返回是否确有删除
func (r *WatchListRepository) Delete(ctx context.Context, userID, movieID int) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&model.WatchListItem{})
	if res.Error != nil {
		return false, fmt.Errorf("delete watchlist item: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListByUser 用户全部条目，按加入顺序
func (r *WatchListRepository) ListByUser(ctx context.Context, userID int) ([]*model.WatchListItem, error) {
	var items []*model.WatchListItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return items, nil
}
