package service

import (
	"context"
	"errors"
	"time"

	"github.com/user/movietracker/internal/model"
)

// =============================================================================
// Mock stores
// =============================================================================

var errStoreDown = errors.New("connection refused")

type mockUserStore struct {
	createFunc         func(ctx context.Context, user *model.User) error
	findByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	findByIDFunc       func(ctx context.Context, id int) (*model.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) UpdateProfile(context.Context, int, model.ProfileUpdate) error {
	return errors.New("not implemented")
}

func (m *mockUserStore) UpdateAvatar(context.Context, int, string) error {
	return errors.New("not implemented")
}

type mockWatchListStore struct {
	getFunc    func(ctx context.Context, userID, movieID int) (*model.WatchListItem, error)
	putFunc    func(ctx context.Context, item *model.WatchListItem) error
	deleteFunc func(ctx context.Context, userID, movieID int) (bool, error)
	listFunc   func(ctx context.Context, userID int) ([]*model.WatchListItem, error)
}

func (m *mockWatchListStore) Get(ctx context.Context, userID, movieID int) (*model.WatchListItem, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, movieID)
	}
	return nil, nil
}

func (m *mockWatchListStore) Put(ctx context.Context, item *model.WatchListItem) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, item)
	}
	return nil
}

func (m *mockWatchListStore) Delete(ctx context.Context, userID, movieID int) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, movieID)
	}
	return false, nil
}

func (m *mockWatchListStore) ListByUser(ctx context.Context, userID int) ([]*model.WatchListItem, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return nil, nil
}

type mockCatalogStore struct {
	searchFunc func(ctx context.Context, q model.CatalogQuery, limit int) ([]*model.CatalogEntry, error)
	calls      int
}

func (m *mockCatalogStore) Search(ctx context.Context, q model.CatalogQuery, limit int) ([]*model.CatalogEntry, error) {
	m.calls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q, limit)
	}
	return nil, nil
}

func (m *mockCatalogStore) FindByID(context.Context, int) (*model.CatalogEntry, error) {
	return nil, nil
}

func (m *mockCatalogStore) Create(context.Context, *model.CatalogEntry) error {
	return nil
}

func (m *mockCatalogStore) ListReleasedBetween(context.Context, time.Time, time.Time) ([]*model.CatalogEntry, error) {
	return nil, errStoreDown
}
