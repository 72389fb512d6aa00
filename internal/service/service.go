package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/config"
	"github.com/tuilachit/Careercompass/internal/repository"
	"github.com/tuilachit/Careercompass/pkg/jwt"
)

// Cache 目录数据缓存（由 pkg/redis.Client 实现，Redis 不可用时传 nil）
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenBlacklist Token 黑名单（由 pkg/redis.Client 实现，Redis 不可用时传 nil）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	CareerPath CareerPathService
	Assessment AssessmentService
	Resource   ResourceService
	Profile    ProfileService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache Cache,
	blacklist TokenBlacklist,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, blacklist, jwtMgr, logger),
		CareerPath: NewCareerPathService(cfg, repo, cache, logger),
		Assessment: NewAssessmentService(cfg, repo, logger),
		Resource:   NewResourceService(cfg, repo, cache, logger),
		Profile:    NewProfileService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
