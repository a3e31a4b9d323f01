package service

import (
	"context"
	"time"

	"github.com/user/movietracker/internal/model"
)

// 不存在的记录一律返回 (nil, nil)

// UserStore 用户存储
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, upd model.ProfileUpdate) error
	UpdateAvatar(ctx context.Context, userID int, avatarURL string) error
}

// CatalogStore 影视目录存储
type CatalogStore interface {
	Search(ctx context.Context, q model.CatalogQuery, limit int) ([]*model.CatalogEntry, error)
	FindByID(ctx context.Context, id int) (*model.CatalogEntry, error)
	Create(ctx context.Context, entry *model.CatalogEntry) error
	ListReleasedBetween(ctx context.Context, from, to time.Time) ([]*model.CatalogEntry, error)
}

// WatchListStore 用户清单存储，以 (userID, movieID) 为键
type WatchListStore interface {
	Get(ctx context.Context, userID, movieID int) (*model.WatchListItem, error)
	Put(ctx context.Context, item *model.WatchListItem) error
	Delete(ctx context.Context, userID, movieID int) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]*model.WatchListItem, error)
}
