package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/user/movietracker/internal/model"
)

// MemoryStore 内存实现，语义与 Postgres 仓库一致，用于测试和本地演示
type MemoryStore struct {
	mu        sync.RWMutex
	users     []*model.User
	catalog   []*model.CatalogEntry
	watchlist map[int][]*model.WatchListItem
	nextID    int
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{watchlist: make(map[int][]*model.WatchListItem)}
}

func (s *MemoryStore) id() int {
	s.nextID++
	return s.nextID
}

// Users 用户存储视图
func (s *MemoryStore) Users() *MemoryUserStore { return &MemoryUserStore{s} }

// Catalog 目录存储视图
func (s *MemoryStore) Catalog() *MemoryCatalogStore { return &MemoryCatalogStore{s} }

// WatchList 清单存储视图
func (s *MemoryStore) WatchList() *MemoryWatchListStore { return &MemoryWatchListStore{s} }

// ==================== 用户 ====================

type MemoryUserStore struct{ s *MemoryStore }

func (m *MemoryUserStore) Create(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return fmt.Errorf("create user: %w", ErrDuplicate)
		}
	}
	user.ID = m.s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if user.ThemePreference == "" {
		user.ThemePreference = model.ThemeLight
	}
	cp := *user
	m.s.users = append(m.s.users, &cp)
	return nil
}

func (m *MemoryUserStore) find(match func(*model.User) bool) *model.User {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, u := range m.s.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (m *MemoryUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (m *MemoryUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Username == username }), nil
}

func (m *MemoryUserStore) FindByID(_ context.Context, id int) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (m *MemoryUserStore) UpdateProfile(_ context.Context, userID int, upd model.ProfileUpdate) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.ID != userID && u.Username == upd.Username {
			return fmt.Errorf("update profile: %w", ErrDuplicate)
		}
	}
	for _, u := range m.s.users {
		if u.ID == userID {
			u.Username = upd.Username
			u.Description = upd.Description
			u.ThemePreference = upd.ThemePreference
			u.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (m *MemoryUserStore) UpdateAvatar(_ context.Context, userID int, avatarURL string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.ID == userID {
			u.AvatarURL = avatarURL
		}
	}
	return nil
}

// ==================== 目录 ====================

type MemoryCatalogStore struct{ s *MemoryStore }

func (m *MemoryCatalogStore) Create(_ context.Context, entry *model.CatalogEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	entry.ID = m.s.id()
	entry.SyncYear()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	cp := *entry
	m.s.catalog = append(m.s.catalog, &cp)
	return nil
}

func (m *MemoryCatalogStore) FindByID(_ context.Context, id int) (*model.CatalogEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, e := range m.s.catalog {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryCatalogStore) Search(_ context.Context, q model.CatalogQuery, limit int) ([]*model.CatalogEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	query := strings.ToLower(q.Query)
	genre := strings.ToLower(q.Genre)
	var out []*model.CatalogEntry
	for _, e := range m.s.catalog {
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		if q.Type != "" && e.Type != q.Type {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(e.Genre), genre) {
			continue
		}
		if q.Year != 0 && (e.ReleaseDate.IsZero() || e.ReleaseDate.Year() != q.Year) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryCatalogStore) ListReleasedBetween(_ context.Context, from, to time.Time) ([]*model.CatalogEntry, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []*model.CatalogEntry
	for _, e := range m.s.catalog {
		if e.ReleaseDate.IsZero() || e.ReleaseDate.Before(from) || !e.ReleaseDate.Before(to) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ReleaseDate.Equal(out[j].ReleaseDate.Time) {
			return out[i].ReleaseDate.Before(out[j].ReleaseDate.Time)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// ==================== 清单 ====================

type MemoryWatchListStore struct{ s *MemoryStore }

func (m *MemoryWatchListStore) Get(_ context.Context, userID, movieID int) (*model.WatchListItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, it := range m.s.watchlist[userID] {
		if it.MovieID == movieID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryWatchListStore) Put(_ context.Context, item *model.WatchListItem) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	now := time.Now()
	item.UpdatedAt = now
	for _, it := range m.s.watchlist[item.UserID] {
		if it.MovieID == item.MovieID {
			it.Status = item.Status
			it.Rating = item.Rating
			it.Review = item.Review
			it.WatchedDate = item.WatchedDate
			it.UpdatedAt = now
			*item = *it
			return nil
		}
	}
	item.ID = m.s.id()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	cp := *item
	m.s.watchlist[item.UserID] = append(m.s.watchlist[item.UserID], &cp)
	return nil
}

func (m *MemoryWatchListStore) Delete(_ context.Context, userID, movieID int) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	items := m.s.watchlist[userID]
	for i, it := range items {
		if it.MovieID == movieID {
			m.s.watchlist[userID] = append(items[:i:i], items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryWatchListStore) ListByUser(_ context.Context, userID int) ([]*model.WatchListItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	items := m.s.watchlist[userID]
	out := make([]*model.WatchListItem, 0, len(items))
	for _, it := range items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}
