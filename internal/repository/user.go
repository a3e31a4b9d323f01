package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/movietracker/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户，密码需已哈希
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translateError(err))
	}
	return nil
}

// FindByEmail 根据邮箱查找用户，不存在时返回 nil, nil
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername 根据用户名查找用户
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID 根据 ID 查找用户
func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// UpdateProfile 更新用户名、简介和主题
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, upd model.ProfileUpdate) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"username":         upd.Username,
			"description":      upd.Description,
			"theme_preference": upd.ThemePreference,
			"updated_at":       time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("update profile: %w", translateError(err))
	}
	return nil
}

// UpdateAvatar 更新头像地址
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int, avatarURL string) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}
