package model

import (
	"time"
)

// 主题
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// User 用户模型
type User struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string    `json:"-" gorm:"not null"`
	AvatarURL       string    `json:"avatar_url"`
	Description     string    `json:"description"`
	Role            string    `json:"role" gorm:"size:20;default:user"`
	ThemePreference string    `json:"theme_preference" gorm:"size:10;default:light"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"-"`
}

// SessionUser 页面 Session 中保存的用户信息
type SessionUser struct {
	ID       int
	Username string
	Theme    string
}

// ProfileUpdate 可修改的资料字段
type ProfileUpdate struct {
	Username        string `json:"username" validate:"required,min=2,max=50"`
	Description     string `json:"description" validate:"max=2000"`
	ThemePreference string `json:"theme_preference" validate:"omitempty,oneof=light dark"`
}
