package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/config"
	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/jwt"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrNotStaff           = errors.New("无后台访问权限")
)

// AuthService 后台登录。不提供注册，账号由运营在数据库侧创建
type AuthService struct {
	userRepo *repository.UserRepository
	jwtCfg   *config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
	}
}

// Login 校验密码并签发 token，仅限管理员和版主
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != model.RoleAdmin && user.Role != model.RoleModerator {
		return nil, ErrNotStaff
	}

	token, err := jwt.GenerateToken(user.ID, s.jwtCfg.Secret, s.jwtCfg.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:                       user.ID,
		Username:                 user.Username,
		Email:                    user.Email,
		AvatarURL:                user.AvatarURL,
		Role:                     user.Role,
		PersonalCredits:          user.PersonalCredits,
		TotalDonated:             user.TotalDonated,
		CommunityListingsDonated: user.CommunityListingsDonated,
		FreeListingsUsedToday:    user.FreeListingsUsedToday,
		NewsletterOptIn:          user.NewsletterOptIn,
		CreatedAt:                user.CreatedAt,
	}
}
