package service

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/oss"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var (
	ErrInvalidImageType = errors.New("不支持的图片格式")
	ErrOSSNotConfigured = errors.New("头像存储未配置")
)

type UserService struct {
	userRepo  *repository.UserRepository
	ossClient *oss.Client
}

func NewUserService(userRepo *repository.UserRepository, ossClient *oss.Client) *UserService {
	return &UserService{
		userRepo:  userRepo,
		ossClient: ossClient,
	}
}

// GetUser 查询单个用户
func (s *UserService) GetUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// Search 按用户名/邮箱片段和角色搜索用户
func (s *UserService) Search(req *dto.SearchUsersRequest) ([]dto.UserInfo, int64, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	users, total, err := s.userRepo.Search(req.Query, req.Role, req.Page, req.PageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, *toUserInfo(&users[i]))
	}
	return infos, total, nil
}

// UpdateRole 修改用户角色
func (s *UserService) UpdateRole(userID int64, role string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}

	user.Role = role
	return toUserInfo(user), nil
}

// UploadAvatar 上传用户头像，旧头像删除失败不阻塞
func (s *UserService) UploadAvatar(userID int64, data []byte, filename string) (string, error) {
	if s.ossClient == nil {
		return "", ErrOSSNotConfigured
	}

	ext := strings.ToLower(filenameExt(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return "", ErrInvalidImageType
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	url, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return "", err
	}

	if user.AvatarURL != "" {
		if err := s.ossClient.Delete(s.ossClient.ExtractObjectKey(user.AvatarURL)); err != nil {
			log.Printf("删除旧头像失败: %v", err)
		}
	}

	return url, nil
}

func filenameExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}
