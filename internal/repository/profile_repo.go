package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tuilachit/Careercompass/internal/model"
	pkgerrors "github.com/tuilachit/Careercompass/pkg/errors"
)

// ProfileRepository 用户档案数据访问接口
type ProfileRepository interface {
	// CreateIfAbsent 以 user_id 为冲突键插入，已存在时不做任何修改
	CreateIfAbsent(ctx context.Context, profile *model.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
}

// profileRepo ProfileRepository 的 GORM 实现
type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 创建 ProfileRepository 实例
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) CreateIfAbsent(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(profile).Error
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("CurrentCareerPath").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update 基于 version 的乐观锁更新
func (r *profileRepo) Update(ctx context.Context, profile *model.UserProfile) error {
	oldVersion := profile.Version
	result := r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("id = ? AND version = ?", profile.ID, oldVersion).
		Updates(map[string]interface{}{
			"career_goals":               profile.CareerGoals,
			"interests":                  profile.Interests,
			"skills":                     profile.Skills,
			"current_career_path_id":     profile.CurrentCareerPathID,
			"experience_level":           profile.ExperienceLevel,
			"preferred_work_environment": profile.PreferredWorkEnvironment,
			"version":                    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	profile.Version = oldVersion + 1
	return nil
}
