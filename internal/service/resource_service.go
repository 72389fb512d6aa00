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
)

// ── 学习资源模块业务错误 ──

var ErrResourceNotFound = errors.New("学习资源不存在")

const resourceCategoriesKey = "catalog:resources:categories"

// ResourceService 学习资源业务接口
type ResourceService interface {
	List(ctx context.Context, req *dto.ResourceListRequest) ([]dto.ResourceResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.ResourceResponse, error)
	Featured(ctx context.Context) ([]dto.ResourceResponse, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	Delete(ctx context.Context, id uint) error
}

type resourceService struct {
	repo          *repository.Repository
	cache         Cache
	logger        *zap.Logger
	featuredSize  int
	categoriesTTL time.Duration
}

// NewResourceService 创建 ResourceService 实例
func NewResourceService(cfg *config.Config, repo *repository.Repository, cache Cache, logger *zap.Logger) ResourceService {
	featured := cfg.Recommendation.FeaturedSize
	if featured <= 0 {
		featured = 6
	}
	return &resourceService{
		repo:          repo,
		cache:         cache,
		logger:        logger,
		featuredSize:  featured,
		categoriesTTL: cfg.Cache.CategoriesTTL,
	}
}

func (s *resourceService) List(ctx context.Context, req *dto.ResourceListRequest) ([]dto.ResourceResponse, int64, error) {
	filter := repository.ResourceFilter{
		ResourceType:    req.ResourceType,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		IsFeatured:      req.IsFeatured,
		Search:          req.Search,
		Ordering:        req.Ordering,
	}

	list, total, err := s.repo.Resource.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出学习资源失败", zap.Error(err))
		return nil, 0, err
	}
	return toResourceResponses(list), total, nil
}

func (s *resourceService) GetByID(ctx context.Context, id uint) (*dto.ResourceResponse, error) {
	r, err := s.repo.Resource.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("查询学习资源失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toResourceResponse(r)
	return &resp, nil
}

func (s *resourceService) Featured(ctx context.Context) ([]dto.ResourceResponse, error) {
	list, err := s.repo.Resource.ListFeatured(ctx, s.featuredSize)
	if err != nil {
		s.logger.Error("查询精选资源失败", zap.Error(err))
		return nil, err
	}
	return toResourceResponses(list), nil
}

func (s *resourceService) Categories(ctx context.Context) ([]string, error) {
	return cachedCategories(ctx, s.cache, resourceCategoriesKey, s.categoriesTTL, s.logger, s.repo.Resource.Categories)
}

// ────────────────────── 管理 ──────────────────────

func (s *resourceService) Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	r := &model.CareerResource{
		Title:           req.Title,
		Content:         req.Content,
		ResourceType:    req.ResourceType,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		EstimatedTime:   req.EstimatedTime,
		Tags:            datatypes.JSONSlice[string](dto.NonNil(req.Tags)),
		IsFeatured:      req.IsFeatured,
		IsActive:        true,
	}

	if err := s.repo.Resource.Create(ctx, r); err != nil {
		s.logger.Error("创建学习资源失败", zap.Error(err))
		return nil, err
	}
	s.invalidateCategories(ctx)

	resp := toResourceResponse(r)
	return &resp, nil
}

func (s *resourceService) Update(ctx context.Context, id uint, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	r, err := s.repo.Resource.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("查询学习资源失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Content != nil {
		r.Content = *req.Content
	}
	if req.ResourceType != nil {
		r.ResourceType = *req.ResourceType
	}
	if req.Category != nil {
		r.Category = *req.Category
	}
	if req.DifficultyLevel != nil {
		r.DifficultyLevel = *req.DifficultyLevel
	}
	if req.EstimatedTime != nil {
		r.EstimatedTime = req.EstimatedTime
	}
	if req.Tags != nil {
		r.Tags = datatypes.JSONSlice[string](dto.NonNil(*req.Tags))
	}
	if req.IsFeatured != nil {
		r.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}

	if err := s.repo.Resource.Update(ctx, r); err != nil {
		s.logger.Error("更新学习资源失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	s.invalidateCategories(ctx)

	resp := toResourceResponse(r)
	return &resp, nil
}

func (s *resourceService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Resource.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("下线学习资源失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

func (s *resourceService) invalidateCategories(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, resourceCategoriesKey); err != nil {
		s.logger.Warn("清除资源类别缓存失败", zap.Error(err))
	}
}
