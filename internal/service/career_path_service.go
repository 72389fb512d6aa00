package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/internal/dto"
	"github.com/tuilachit/Careercompass/internal/model"
	"github.com/tuilachit/Careercompass/internal/repository"
	pkgredis "github.com/tuilachit/Careercompass/pkg/redis"
)

// ── 职业路径模块业务错误 ──

var (
	ErrCareerPathNotFound = errors.New("职业路径不存在")
	ErrSalaryRangeInvalid = errors.New("薪资下限不能高于上限")
)

const careerPathCategoriesKey = "catalog:career_paths:categories"

// CareerPathService 职业路径业务接口
type CareerPathService interface {
	List(ctx context.Context, req *dto.CareerPathListRequest) ([]dto.CareerPathResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.CareerPathResponse, error)
	// Featured 随机返回若干在架职业路径
	Featured(ctx context.Context) ([]dto.CareerPathResponse, error)
	// Categories 在架职业路径的去重类别，优先读缓存
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req *dto.CreateCareerPathRequest) (*dto.CareerPathResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCareerPathRequest) (*dto.CareerPathResponse, error)
	Delete(ctx context.Context, id uint) error
}

type careerPathService struct {
	repo          *repository.Repository
	cache         Cache
	logger        *zap.Logger
	featuredSize  int
	categoriesTTL time.Duration
}

// NewCareerPathService 创建 CareerPathService 实例
func NewCareerPathService(cfg *config.Config, repo *repository.Repository, cache Cache, logger *zap.Logger) CareerPathService {
	featured := cfg.Recommendation.FeaturedSize
	if featured <= 0 {
		featured = 6
	}
	return &careerPathService{
		repo:          repo,
		cache:         cache,
		logger:        logger,
		featuredSize:  featured,
		categoriesTTL: cfg.Cache.CategoriesTTL,
	}
}

// ────────────────────── 查询 ──────────────────────

func (s *careerPathService) List(ctx context.Context, req *dto.CareerPathListRequest) ([]dto.CareerPathResponse, int64, error) {
	filter := repository.CareerPathFilter{
		Category:        req.Category,
		EducationLevel:  req.EducationLevel,
		GrowthOutlook:   req.GrowthOutlook,
		WorkEnvironment: req.WorkEnvironment,
		Search:          req.Search,
		Ordering:        req.Ordering,
	}

	paths, total, err := s.repo.CareerPath.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出职业路径失败", zap.Error(err))
		return nil, 0, err
	}
	return toCareerPathResponses(paths), total, nil
}

func (s *careerPathService) GetByID(ctx context.Context, id uint) (*dto.CareerPathResponse, error) {
	p, err := s.repo.CareerPath.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCareerPathNotFound
		}
		s.logger.Error("查询职业路径失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toCareerPathResponse(p)
	return &resp, nil
}

func (s *careerPathService) Featured(ctx context.Context) ([]dto.CareerPathResponse, error) {
	paths, err := s.repo.CareerPath.RandomSample(ctx, s.featuredSize)
	if err != nil {
		s.logger.Error("查询推荐职业路径失败", zap.Error(err))
		return nil, err
	}
	return toCareerPathResponses(paths), nil
}

func (s *careerPathService) Categories(ctx context.Context) ([]string, error) {
	return cachedCategories(ctx, s.cache, careerPathCategoriesKey, s.categoriesTTL, s.logger, s.repo.CareerPath.Categories)
}

// ────────────────────── 管理 ──────────────────────

func (s *careerPathService) Create(ctx context.Context, req *dto.CreateCareerPathRequest) (*dto.CareerPathResponse, error) {
	if err := checkSalaryRange(req.SalaryRangeMin, req.SalaryRangeMax); err != nil {
		return nil, err
	}

	p := &model.CareerPath{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		SalaryRangeMin:  req.SalaryRangeMin,
		SalaryRangeMax:  req.SalaryRangeMax,
		EducationLevel:  req.EducationLevel,
		RequiredSkills:  datatypes.JSONSlice[string](dto.NonNil(req.RequiredSkills)),
		GrowthOutlook:   req.GrowthOutlook,
		WorkEnvironment: req.WorkEnvironment,
		IsActive:        true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.CareerPath.Create(ctx, p); err != nil {
		s.logger.Error("创建职业路径失败", zap.Error(err))
		return nil, err
	}
	s.invalidateCategories(ctx)

	resp := toCareerPathResponse(p)
	return &resp, nil
}

func (s *careerPathService) Update(ctx context.Context, id uint, req *dto.UpdateCareerPathRequest) (*dto.CareerPathResponse, error) {
	p, err := s.repo.CareerPath.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCareerPathNotFound
		}
		s.logger.Error("查询职业路径失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.SalaryRangeMin != nil {
		p.SalaryRangeMin = req.SalaryRangeMin
	}
	if req.SalaryRangeMax != nil {
		p.SalaryRangeMax = req.SalaryRangeMax
	}
	if req.EducationLevel != nil {
		p.EducationLevel = *req.EducationLevel
	}
	if req.RequiredSkills != nil {
		p.RequiredSkills = datatypes.JSONSlice[string](dto.NonNil(*req.RequiredSkills))
	}
	if req.GrowthOutlook != nil {
		p.GrowthOutlook = *req.GrowthOutlook
	}
	if req.WorkEnvironment != nil {
		p.WorkEnvironment = *req.WorkEnvironment
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := checkSalaryRange(p.SalaryRangeMin, p.SalaryRangeMax); err != nil {
		return nil, err
	}

	if err := s.repo.CareerPath.Update(ctx, p); err != nil {
		s.logger.Error("更新职业路径失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	s.invalidateCategories(ctx)

	resp := toCareerPathResponse(p)
	return &resp, nil
}

// Delete 软删除：置 is_active = false，历史推荐仍可引用
func (s *careerPathService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.CareerPath.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCareerPathNotFound
		}
		s.logger.Error("下线职业路径失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

func (s *careerPathService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, careerPathCategoriesKey); err != nil {
		s.logger.Warn("清除类别缓存失败", zap.Error(err))
	}
}

// ── 辅助函数 ──

func checkSalaryRange(min, max *int) error {
	if min != nil && max != nil && *min > *max {
		return newFieldError(ErrSalaryRangeInvalid).
			Add("salary_range_max", "Must be greater than or equal to salary_range_min.")
	}
	return nil
}

// cachedCategories 先读缓存，未命中或缓存不可用时回源数据库并回填
func cachedCategories(
	ctx context.Context,
	cache Cache,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	load func(context.Context) ([]string, error),
) ([]string, error) {
	if cache != nil {
		var cached []string
		err := cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return dto.NonNil(cached), nil
		}
		if !errors.Is(err, pkgredis.ErrCacheMiss) {
			logger.Warn("读取类别缓存失败，回源数据库", zap.String("key", key), zap.Error(err))
		}
	}

	categories, err := load(ctx)
	if err != nil {
		logger.Error("查询类别失败", zap.Error(err))
		return nil, err
	}
	categories = dto.NonNil(categories)

	if cache != nil {
		if err := cache.SetJSON(ctx, key, categories, ttl); err != nil {
			logger.Warn("写入类别缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return categories, nil
}
