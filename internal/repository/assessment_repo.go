package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/model"
)

// AssessmentRepository 职业测评数据访问接口
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.CareerAssessment) error
	GetByID(ctx context.Context, id uint) (*model.CareerAssessment, error)
	GetActiveByID(ctx context.Context, id uint) (*model.CareerAssessment, error)
	GetByTitle(ctx context.Context, title string) (*model.CareerAssessment, error)
	ListActive(ctx context.Context) ([]model.CareerAssessment, error)
	Update(ctx context.Context, assessment *model.CareerAssessment) error
}

// assessmentRepo AssessmentRepository 的 GORM 实现
type assessmentRepo struct {
	db *gorm.DB
}

// NewAssessmentRepo 创建 AssessmentRepository 实例
func NewAssessmentRepo(db *gorm.DB) AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.CareerAssessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepo) GetByID(ctx context.Context, id uint) (*model.CareerAssessment, error) {
	var a model.CareerAssessment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) GetActiveByID(ctx context.Context, id uint) (*model.CareerAssessment, error) {
	var a model.CareerAssessment
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) GetByTitle(ctx context.Context, title string) (*model.CareerAssessment, error) {
	var a model.CareerAssessment
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) ListActive(ctx context.Context) ([]model.CareerAssessment, error) {
	var list []model.CareerAssessment
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *assessmentRepo) Update(ctx context.Context, assessment *model.CareerAssessment) error {
	return r.db.WithContext(ctx).Save(assessment).Error
}
