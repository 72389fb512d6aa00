package handler

import (
	"go.uber.org/zap"

	"github.com/tuilachit/Careercompass/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	CareerPath *CareerPathHandler
	Assessment *AssessmentHandler
	Result     *AssessmentResultHandler
	Resource   *ResourceHandler
	Profile    *ProfileHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
// cache 为 nil 表示 Redis 未启用，健康检查中标记为 disabled
func NewHandler(svc *service.Service, db, cache Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Health:     NewHealthHandler(db, cache, logger),
		Auth:       NewAuthHandler(svc.Auth, logger),
		CareerPath: NewCareerPathHandler(svc.CareerPath, logger),
		Assessment: NewAssessmentHandler(svc.Assessment, logger),
		Result:     NewAssessmentResultHandler(svc.Assessment, logger),
		Resource:   NewResourceHandler(svc.Resource, logger),
		Profile:    NewProfileHandler(svc.Profile, logger),
		Export:     NewExportHandler(svc.Export, logger),
	}
}
