package service

import (
	"context"
	"errors"
	"strings"

	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/repository"
)

// ProfileService 用户资料
type ProfileService struct {
	users UserStore
}

// NewProfileService 创建资料服务
func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{users: users}
}

// Get 获取资料
func (s *ProfileService) Get(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

// Update 更新用户名、简介和主题；主题为空时保持原值
func (s *ProfileService) Update(ctx context.Context, userID int, upd model.ProfileUpdate) (*model.User, error) {
	upd.Username = strings.TrimSpace(upd.Username)
	if err := validateStruct(upd); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.ThemePreference == "" {
		upd.ThemePreference = current.ThemePreference
	}

	if upd.Username != current.Username {
		taken, err := s.users.FindByUsername(ctx, upd.Username)
		if err != nil {
			return nil, storeError(err)
		}
		if taken != nil {
			return nil, conflict("Username already taken")
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, upd); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Username already taken")
		}
		return nil, storeError(err)
	}

	current.Username = upd.Username
	current.Description = upd.Description
	current.ThemePreference = upd.ThemePreference
	return current, nil
}

// SetAvatar 更新头像地址
func (s *ProfileService) SetAvatar(ctx context.Context, userID int, avatarURL string) error {
	if err := s.users.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return storeError(err)
	}
	return nil
}
