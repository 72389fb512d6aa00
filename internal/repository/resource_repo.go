package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/model"
)

// ResourceFilter 学习资源列表过滤条件
type ResourceFilter struct {
	ResourceType    string
	Category        string
	DifficultyLevel string
	IsFeatured      *bool
	Search          string // 标题 / 内容 / 标签 模糊匹配
	Ordering        string
}

var resourceOrderFields = map[string]bool{
	"title":          true,
	"created_at":     true,
	"estimated_time": true,
}

// resourceDefaultOrder 精选在前，其次按标题
const resourceDefaultOrder = "is_featured DESC, title ASC, id ASC"

// ResourceRepository 学习资源数据访问接口
type ResourceRepository interface {
	Create(ctx context.Context, resource *model.CareerResource) error
	GetActiveByID(ctx context.Context, id uint) (*model.CareerResource, error)
	GetByID(ctx context.Context, id uint) (*model.CareerResource, error)
	GetByTitle(ctx context.Context, title string) (*model.CareerResource, error)
	List(ctx context.Context, filter ResourceFilter, offset, limit int) ([]model.CareerResource, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]model.CareerResource, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, resource *model.CareerResource) error
	Deactivate(ctx context.Context, id uint) error
}

// resourceRepo ResourceRepository 的 GORM 实现
type resourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo 创建 ResourceRepository 实例
func NewResourceRepo(db *gorm.DB) ResourceRepository {
	return &resourceRepo{db: db}
}

func (r *resourceRepo) Create(ctx context.Context, resource *model.CareerResource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepo) GetByID(ctx context.Context, id uint) (*model.CareerResource, error) {
	var res model.CareerResource
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepo) GetActiveByID(ctx context.Context, id uint) (*model.CareerResource, error) {
	var res model.CareerResource
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepo) GetByTitle(ctx context.Context, title string) (*model.CareerResource, error) {
	var res model.CareerResource
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepo) List(ctx context.Context, filter ResourceFilter, offset, limit int) ([]model.CareerResource, int64, error) {
	var list []model.CareerResource
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CareerResource{}).Where("is_active = ?", true)

	if filter.ResourceType != "" {
		db = db.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.DifficultyLevel != "" {
		db = db.Where("difficulty_level = ?", filter.DifficultyLevel)
	}
	if filter.IsFeatured != nil {
		db = db.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		db = db.Where(
			"LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\\' OR LOWER(CAST(tags AS TEXT)) LIKE LOWER(?) ESCAPE '\\'",
			p, p, p,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order(orderClause(filter.Ordering, resourceOrderFields, resourceDefaultOrder)).
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *resourceRepo) ListFeatured(ctx context.Context, limit int) ([]model.CareerResource, error) {
	var list []model.CareerResource
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("title ASC, id ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *resourceRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.CareerResource{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *resourceRepo) Update(ctx context.Context, resource *model.CareerResource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *resourceRepo) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.CareerResource{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
