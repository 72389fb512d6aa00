package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/model"
)

// ResultScope 测评结果可见范围：登录用户按 UserID，匿名按 SessionID
type ResultScope struct {
	UserID    string
	SessionID string
}

// Empty 两者皆空时不可见任何结果
func (s ResultScope) Empty() bool {
	return s.UserID == "" && s.SessionID == ""
}

// AssessmentResultRepository 测评结果数据访问接口
type AssessmentResultRepository interface {
	Create(ctx context.Context, result *model.AssessmentResult) error
	UpdateRecommendations(ctx context.Context, id uint, careerIDs []uint) error
	GetByID(ctx context.Context, id uint) (*model.AssessmentResult, error)
	ListByScope(ctx context.Context, scope ResultScope, offset, limit int) ([]model.AssessmentResult, int64, error)
	ListForExport(ctx context.Context, assessmentID uint) ([]model.AssessmentResult, error)
}

// assessmentResultRepo AssessmentResultRepository 的 GORM 实现
type assessmentResultRepo struct {
	db *gorm.DB
}

// NewAssessmentResultRepo 创建 AssessmentResultRepository 实例
func NewAssessmentResultRepo(db *gorm.DB) AssessmentResultRepository {
	return &assessmentResultRepo{db: db}
}

func (r *assessmentResultRepo) Create(ctx context.Context, result *model.AssessmentResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// UpdateRecommendations 仅写回 recommended_careers 一列
func (r *assessmentResultRepo) UpdateRecommendations(ctx context.Context, id uint, careerIDs []uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.AssessmentResult{}).
		Where("id = ?", id).
		Update("recommended_careers", datatypes.JSONSlice[uint](careerIDs))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assessmentResultRepo) GetByID(ctx context.Context, id uint) (*model.AssessmentResult, error) {
	var res model.AssessmentResult
	err := r.db.WithContext(ctx).
		Preload("Assessment").
		Preload("User").
		Where("id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *assessmentResultRepo) ListByScope(ctx context.Context, scope ResultScope, offset, limit int) ([]model.AssessmentResult, int64, error) {
	var results []model.AssessmentResult
	var total int64

	if scope.Empty() {
		return results, 0, nil
	}

	db := r.db.WithContext(ctx).Model(&model.AssessmentResult{})
	if scope.UserID != "" {
		db = db.Where("user_id = ?", scope.UserID)
	} else {
		db = db.Where("session_id = ?", scope.SessionID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Assessment").Preload("User").
		Order("completed_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// ListForExport 导出用，assessmentID 为 0 时导出全部
func (r *assessmentResultRepo) ListForExport(ctx context.Context, assessmentID uint) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	db := r.db.WithContext(ctx).Preload("Assessment").Preload("User")
	if assessmentID != 0 {
		db = db.Where("assessment_id = ?", assessmentID)
	}
	err := db.Order("completed_at ASC, id ASC").Find(&results).Error
	return results, err
}
