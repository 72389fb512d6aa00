package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
	pkgerrors "github.com/tuilachit/Careercompass/pkg/errors"
)

// ── 用户档案模块业务错误 ──

var ErrProfileNotFound = errors.New("用户档案不存在")

// ProfileService 用户档案业务接口
type ProfileService interface {
	// GetOrCreate 获取当前用户档案，不存在时以默认值创建；重复调用结果一致
	GetOrCreate(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

func (s *profileService) GetOrCreate(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toProfileResponse(p)
	return &resp, nil
}

func (s *profileService) getOrCreate(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	p, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 以 user_id 唯一约束兜底并发创建
	if err := s.repo.Profile.CreateIfAbsent(ctx, newDefaultProfile(userID)); err != nil {
		s.logger.Error("创建用户档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	p, err = s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("查询用户档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != p.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	if req.CareerGoals != nil {
		p.CareerGoals = datatypes.JSONSlice[string](dto.NonNil(*req.CareerGoals))
	}
	if req.Interests != nil {
		p.Interests = datatypes.JSONSlice[string](dto.NonNil(*req.Interests))
	}
	if req.Skills != nil {
		p.Skills = datatypes.JSONSlice[string](dto.NonNil(*req.Skills))
	}
	if req.ExperienceLevel != nil {
		p.ExperienceLevel = *req.ExperienceLevel
	}
	if req.PreferredWorkEnvironment != nil {
		p.PreferredWorkEnvironment = *req.PreferredWorkEnvironment
	}
	if req.CurrentCareerPathID != nil {
		s.applyCurrentCareerPath(ctx, p, *req.CurrentCareerPathID)
	}

	if err := s.repo.Profile.Update(ctx, p); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("更新用户档案失败", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	updated, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toProfileResponse(updated)
	return &resp, nil
}

// applyCurrentCareerPath 0 表示清除；不存在或已下线的 ID 忽略，保留原值
func (s *profileService) applyCurrentCareerPath(ctx context.Context, p *model.UserProfile, id uint) {
	if id == 0 {
		p.CurrentCareerPathID = nil
		p.CurrentCareerPath = nil
		return
	}

	path, err := s.repo.CareerPath.GetActiveByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询职业路径失败，忽略 current_career_path_id", zap.Uint("id", id), zap.Error(err))
		}
		return
	}
	p.CurrentCareerPathID = &path.ID
	p.CurrentCareerPath = path
}

func newDefaultProfile(userID string) *model.UserProfile {
	return &model.UserProfile{
		UserID:          userID,
		CareerGoals:     datatypes.JSONSlice[string]{},
		Interests:       datatypes.JSONSlice[string]{},
		Skills:          datatypes.JSONSlice[string]{},
		ExperienceLevel: "entry",
	}
}
