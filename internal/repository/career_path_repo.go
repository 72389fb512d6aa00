package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/internal/model"
)

// CareerPathFilter 职业路径列表过滤条件
type CareerPathFilter struct {
	Category        string
	EducationLevel  string
	GrowthOutlook   string
	WorkEnvironment string
	Search          string // 标题 / 描述 / 技能 模糊匹配
	Ordering        string
}

var careerPathOrderFields = map[string]bool{
	"title":            true,
	"created_at":       true,
	"salary_range_min": true,
}

// catalogOrder 推荐打分使用的目录顺序，决定同分时的先后
const catalogOrder = "title ASC, id ASC"

// CareerPathRepository 职业路径数据访问接口
type CareerPathRepository interface {
	Create(ctx context.Context, path *model.CareerPath) error
	GetByID(ctx context.Context, id uint) (*model.CareerPath, error)
	GetActiveByID(ctx context.Context, id uint) (*model.CareerPath, error)
	GetByTitle(ctx context.Context, title string) (*model.CareerPath, error)
	List(ctx context.Context, filter CareerPathFilter, offset, limit int) ([]model.CareerPath, int64, error)
	ListAllActive(ctx context.Context) ([]model.CareerPath, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.CareerPath, error)
	RandomSample(ctx context.Context, n int) ([]model.CareerPath, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, path *model.CareerPath) error
	Deactivate(ctx context.Context, id uint) error
}

// careerPathRepo CareerPathRepository 的 GORM 实现
type careerPathRepo struct {
	db *gorm.DB
}

// NewCareerPathRepo 创建 CareerPathRepository 实例
func NewCareerPathRepo(db *gorm.DB) CareerPathRepository {
	return &careerPathRepo{db: db}
}

func (r *careerPathRepo) Create(ctx context.Context, path *model.CareerPath) error {
	return r.db.WithContext(ctx).Create(path).Error
}

func (r *careerPathRepo) GetByID(ctx context.Context, id uint) (*model.CareerPath, error) {
	var path model.CareerPath
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *careerPathRepo) GetActiveByID(ctx context.Context, id uint) (*model.CareerPath, error) {
	var path model.CareerPath
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *careerPathRepo) GetByTitle(ctx context.Context, title string) (*model.CareerPath, error) {
	var path model.CareerPath
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *careerPathRepo) List(ctx context.Context, filter CareerPathFilter, offset, limit int) ([]model.CareerPath, int64, error) {
	var paths []model.CareerPath
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CareerPath{}).Where("is_active = ?", true)

	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.EducationLevel != "" {
		db = db.Where("education_level = ?", filter.EducationLevel)
	}
	if filter.GrowthOutlook != "" {
		db = db.Where("growth_outlook = ?", filter.GrowthOutlook)
	}
	if filter.WorkEnvironment != "" {
		db = db.Where("work_environment = ?", filter.WorkEnvironment)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		db = db.Where(
			"LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\\' OR LOWER(CAST(required_skills AS TEXT)) LIKE LOWER(?) ESCAPE '\\'",
			p, p, p,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order(orderClause(filter.Ordering, careerPathOrderFields, catalogOrder)).
		Offset(offset).Limit(limit).
		Find(&paths).Error; err != nil {
		return nil, 0, err
	}

	return paths, total, nil
}

// ListAllActive 按目录顺序返回全部在架职业路径
func (r *careerPathRepo) ListAllActive(ctx context.Context) ([]model.CareerPath, error) {
	var paths []model.CareerPath
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(catalogOrder).
		Find(&paths).Error
	return paths, err
}

// ListByIDs 批量查询，不过滤 is_active（历史推荐可能指向已下线路径）
func (r *careerPathRepo) ListByIDs(ctx context.Context, ids []uint) ([]model.CareerPath, error) {
	var paths []model.CareerPath
	if len(ids) == 0 {
		return paths, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&paths).Error
	return paths, err
}

func (r *careerPathRepo) RandomSample(ctx context.Context, n int) ([]model.CareerPath, error) {
	var paths []model.CareerPath
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(n).
		Find(&paths).Error
	return paths, err
}

func (r *careerPathRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.CareerPath{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *careerPathRepo) Update(ctx context.Context, path *model.CareerPath) error {
	return r.db.WithContext(ctx).Save(path).Error
}

func (r *careerPathRepo) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.CareerPath{}).
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
