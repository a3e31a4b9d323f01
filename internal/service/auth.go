package service

import (
	"context"
	"errors"
	"strings"

	"github.com/user/movietracker/internal/logging"
	"github.com/user/movietracker/internal/metrics"
	"github.com/user/movietracker/internal/model"
	"github.com/user/movietracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Session 登录/注册结果
type Session struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterInput 注册请求
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput 登录请求
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService 注册、登录与令牌校验
type AuthService struct {
	users     UserStore
	tokens    *TokenService
	cost      int
	dummyHash []byte
}

// NewAuthService 创建认证服务
func NewAuthService(users UserStore, tokens *TokenService, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// 用户不存在时也做一次比较，避免响应时间泄露邮箱是否注册
	dummy, _ := bcrypt.GenerateFromPassword([]byte("movietracker-dummy-password"), bcryptCost)
	return &AuthService{
		users:     users,
		tokens:    tokens,
		cost:      bcryptCost,
		dummyHash: dummy,
	}
}

// Register 注册新用户并签发令牌
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		metrics.RecordAuth("register", "invalid")
		return nil, err
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, storeError(err)
	} else if existing != nil {
		metrics.RecordAuth("register", "conflict")
		return nil, ErrConflict
	}
	if existing, err := s.users.FindByUsername(ctx, in.Username); err != nil {
		return nil, storeError(err)
	} else if existing != nil {
		metrics.RecordAuth("register", "conflict")
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, storeError(err)
	}

	user := &model.User{
		Username:        in.Username,
		Email:           in.Email,
		PasswordHash:    string(hash),
		Role:            "user",
		ThemePreference: model.ThemeLight,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordAuth("register", "conflict")
			return nil, ErrConflict
		}
		return nil, storeError(err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, storeError(err)
	}

	metrics.RecordAuth("register", "success")
	log := logging.With("auth")
	log.Info().Int("user_id", user.ID).Msg("用户注册成功")
	return &Session{Token: token, User: user}, nil
}

// Login 邮箱密码登录
// 用户不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		metrics.RecordAuth("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		metrics.RecordAuth("login", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, storeError(err)
	}

	metrics.RecordAuth("login", "success")
	return &Session{Token: token, User: user}, nil
}

// Validate 校验令牌，无副作用
func (s *AuthService) Validate(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}
