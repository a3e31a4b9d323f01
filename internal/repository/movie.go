package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/user/movietracker/internal/model"
	"gorm.io/gorm"
)

// CatalogRepository 影视目录仓库
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Search 条件搜索，条件之间为 AND，按标题升序
func (r *CatalogRepository) Search(ctx context.Context, q model.CatalogQuery, limit int) ([]*model.CatalogEntry, error) {
	tx := r.db.WithContext(ctx).Model(&model.CatalogEntry{})

	if q.Query != "" {
		tx = tx.Where("title ILIKE ?", "%"+escapeLike(q.Query)+"%")
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	if q.Genre != "" {
		tx = tx.Where("genre ILIKE ?", "%"+escapeLike(q.Genre)+"%")
	}
	if q.Year != 0 {
		tx = tx.Where("EXTRACT(YEAR FROM release_date) = ?", q.Year)
	}

	var entries []*model.CatalogEntry
	if err := tx.Order("title ASC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	return entries, nil
}

// FindByID 根据 ID 查找条目，不存在时返回 nil, nil
func (r *CatalogRepository) FindByID(ctx context.Context, id int) (*model.CatalogEntry, error) {
	var entry model.CatalogEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find catalog entry: %w", err)
	}
	return &entry, nil
}

// Create 新增条目
func (r *CatalogRepository) Create(ctx context.Context, entry *model.CatalogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create catalog entry: %w", translateError(err))
	}
	return nil
}

// ListReleasedBetween 上映日期在 [from, to) 内的条目
func (r *CatalogRepository) ListReleasedBetween(ctx context.Context, from, to time.Time) ([]*model.CatalogEntry, error) {
	var entries []*model.CatalogEntry
	err := r.db.WithContext(ctx).
		Where("release_date >= ? AND release_date < ?", from, to).
		Order("release_date ASC, title ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list premieres: %w", err)
	}
	return entries, nil
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
